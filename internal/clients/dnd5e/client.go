// Package dnd5e imports D&D 5e SRD spells as ability definitions.
package dnd5e

import (
	"net/http"
	"strings"

	rpgerr "github.com/KirkDiggler/tactics-engine/internal/errors"
	"github.com/fadedpez/dnd5e-api/clients/dnd5e"
	"github.com/fadedpez/dnd5e-api/entities"
)

// DefaultBaseURL is where the upstream client sends its requests
const DefaultBaseURL = "https://www.dnd5eapi.co/api"

// spellAPI is the part of the upstream client this package calls
type spellAPI interface {
	GetSpell(key string) (*entities.Spell, error)
	ListSpells(input *dnd5e.ListSpellsInput) ([]*entities.ReferenceItem, error)
}

type client struct {
	client spellAPI
}

type Config struct {
	HttpClient *http.Client
	// BaseURL points the client at a mirror of the SRD API
	BaseURL string
}

func New(cfg *Config) (Client, error) {
	if cfg == nil {
		return nil, rpgerr.InvalidArgument("config is required")
	}

	httpClient := cfg.HttpClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if base := strings.TrimSuffix(cfg.BaseURL, "/"); base != "" && base != DefaultBaseURL {
		rewritten := *httpClient
		rewritten.Transport = &rebaseTransport{base: base, next: httpClient.Transport}
		httpClient = &rewritten
	}

	dndClient, err := dnd5e.NewDND5eAPI(&dnd5e.DND5eAPIConfig{
		Client: httpClient,
	})
	if err != nil {
		return nil, rpgerr.Wrap(err, "failed to create dnd5e api client")
	}

	return &client{
		client: dndClient,
	}, nil
}

// rebaseTransport sends requests meant for DefaultBaseURL to base instead
type rebaseTransport struct {
	base string
	next http.RoundTripper
}

func (t *rebaseTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	next := t.next
	if next == nil {
		next = http.DefaultTransport
	}

	target := req.URL.String()
	if !strings.HasPrefix(target, DefaultBaseURL) {
		return next.RoundTrip(req)
	}

	out := req.Clone(req.Context())
	u, err := req.URL.Parse(t.base + strings.TrimPrefix(target, DefaultBaseURL))
	if err != nil {
		return nil, rpgerr.Wrapf(err, "invalid base url %s", t.base)
	}
	out.URL = u
	out.Host = u.Host
	return next.RoundTrip(out)
}
