package fdsn

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/quaketrack/rbfetch/internal/domain"
)

// Well-known FDSN datacenter codes. Anything not listed here is treated as
// a base URL and used verbatim.
var datacenters = map[string]string{
	"IRIS":       "https://service.iris.edu",
	"EARTHSCOPE": "https://service.iris.edu",
	"GEOFON":     "https://geofon.gfz-potsdam.de",
	"ORFEUS":     "https://www.orfeus-eu.org",
	"INGV":       "https://webservices.ingv.it",
	"ETH":        "https://eida.ethz.ch",
	"RESIF":      "https://ws.resif.fr",
	"USGS":       "https://earthquake.usgs.gov",
	"NCEDC":      "https://service.ncedc.org",
	"SCEDC":      "https://service.scedc.caltech.edu",
	"BGR":        "https://eida.bgr.de",
	"KOERI":      "https://eida.koeri.boun.edu.tr",
	"RASPISHAKE": "https://data.raspberryshake.org",
}

const (
	queryPath  = "/fdsnws/dataselect/1/query"
	timeLayout = "2006-01-02T15:04:05"
)

// Client talks to one FDSN dataselect web service.
type Client struct {
	baseURL string
	http    *http.Client
}

// New resolves a datacenter code or base URL into a Client.
func New(server string) *Client {
	base, ok := datacenters[strings.ToUpper(server)]
	if !ok {
		base = strings.TrimRight(server, "/")
	}
	return &Client{
		baseURL: base,
		http:    &http.Client{Timeout: 2 * time.Minute},
	}
}

// BaseURL reports the resolved service root.
func (c *Client) BaseURL() string { return c.baseURL }

// Fetch requests miniSEED bytes for one stream over [start, end).
// A 204 or 404 from the service maps to domain.ErrNoData.
func (c *Client) Fetch(ctx context.Context, sel domain.Selectors, start, end time.Time) ([]byte, error) {
	q := url.Values{}
	q.Set("net", sel.Network)
	q.Set("sta", sel.Station)
	q.Set("cha", sel.Channel)
	if sel.Location == "" {
		// Blank location codes are spelled "--" on the wire
		q.Set("loc", "--")
	} else {
		q.Set("loc", sel.Location)
	}
	q.Set("starttime", start.UTC().Format(timeLayout))
	q.Set("endtime", end.UTC().Format(timeLayout))
	q.Set("format", "miniseed")

	reqURL := c.baseURL + queryPath + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "rbfetch")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("dataselect request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNoContent || resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%s %s-%s: %w", sel, start.Format(timeLayout), end.Format(timeLayout), domain.ErrNoData)
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("dataselect returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	block, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading waveform block: %w", err)
	}
	if len(block) == 0 {
		return nil, domain.ErrEmptyResponse
	}
	return block, nil
}
