package geolocation

import (
	"context"
	"net"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"termbase/internal/logging"
)

// Location sentinels. LocalNetwork is returned for private and loopback
// addresses without a network call; Unresolved for anything the provider
// could not place.
const (
	LocalNetwork = "local network"
	Unresolved   = "unresolved"
)

type geoResponse struct {
	Status     string `json:"status"`
	Country    string `json:"country"`
	RegionName string `json:"regionName"`
	City       string `json:"city"`
	District   string `json:"district"`
	ISP        string `json:"isp"`
}

// Resolver maps a client IP to a coarse human-readable location string by
// querying an ip-api.com style endpoint. Lookups are best effort: every
// failure mode degrades to the Unresolved sentinel and the login path is
// never blocked beyond the configured timeout.
type Resolver struct {
	client *resty.Client
	log    zerolog.Logger
}

func NewResolver(apiBase string, timeout time.Duration) *Resolver {
	client := resty.New().
		SetBaseURL(apiBase).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	return &Resolver{
		client: client,
		log:    logging.NewLogger("geolocation"),
	}
}

func (r *Resolver) Resolve(ctx context.Context, ip string) string {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return Unresolved
	}
	if parsed.IsLoopback() || parsed.IsPrivate() || parsed.IsLinkLocalUnicast() || parsed.IsUnspecified() {
		return LocalNetwork
	}

	var geo geoResponse
	resp, err := r.client.R().
		SetContext(ctx).
		SetResult(&geo).
		SetPathParam("ip", ip).
		Get("/json/{ip}")
	if err != nil {
		r.log.Warn().Err(err).Str("ip", ip).Msg("geolocation lookup failed")
		return Unresolved
	}
	if resp.StatusCode() != 200 || geo.Status != "success" {
		r.log.Warn().Str("ip", ip).Str("status", geo.Status).Int("http_status", resp.StatusCode()).
			Msg("geolocation lookup unresolved")
		return Unresolved
	}

	return describe(geo)
}

func describe(geo geoResponse) string {
	parts := make([]string, 0, 4)
	for _, p := range []string{geo.Country, geo.RegionName, geo.City, geo.District} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return Unresolved
	}

	location := strings.Join(parts, " ")
	if geo.ISP != "" {
		location += " (" + geo.ISP + ")"
	}

	return location
}
