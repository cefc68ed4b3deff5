package sso

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"

	"github.com/EATMove/CDT-sub001/internal/config"
	"github.com/crewjam/saml"
	"github.com/crewjam/saml/samlsp"
	xrv "github.com/mattermost/xml-roundtrip-validator"
	dsig "github.com/russellhaering/goxmldsig"
)

var errNoSSOLocation = errors.New("idp metadata has no usable SingleSignOnService")

func newServiceProvider(cfg config.SAML) (*saml.ServiceProvider, error) {
	rootURL, err := url.Parse(cfg.RootURL)
	if err != nil {
		return nil, fmt.Errorf("saml.root_url: %w", err)
	}

	key, cert, err := cfg.KeyPair()
	if err != nil {
		return nil, fmt.Errorf("saml key pair: %w", err)
	}

	idpMetadata, err := loadIDPMetadata(cfg.IDPMetadataPath)
	if err != nil {
		return nil, err
	}

	sp := &saml.ServiceProvider{
		EntityID:          cfg.EntityID,
		Key:               key,
		Certificate:       cert,
		MetadataURL:       *rootURL.ResolveReference(&url.URL{Path: "saml/metadata"}),
		AcsURL:            *rootURL.ResolveReference(&url.URL{Path: "saml/acs"}),
		SloURL:            *rootURL.ResolveReference(&url.URL{Path: "saml/slo"}),
		IDPMetadata:       idpMetadata,
		SignatureMethod:   dsig.RSASHA256SignatureMethod,
		AllowIDPInitiated: cfg.AllowIDPInitiated,
		LogoutBindings:    []string{saml.HTTPPostBinding},
	}

	if _, loc := ssoBinding(sp); loc == "" {
		return nil, errNoSSOLocation
	}
	return sp, nil
}

func loadIDPMetadata(path string) (*saml.EntityDescriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read idp metadata: %w", err)
	}

	if err := xrv.Validate(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("idp metadata does not round-trip: %w", err)
	}

	md, err := samlsp.ParseMetadata(data)
	if err != nil {
		return nil, fmt.Errorf("parse idp metadata: %w", err)
	}
	return md, nil
}

// ssoBinding prefers the redirect binding and falls back to POST.
func ssoBinding(sp *saml.ServiceProvider) (binding, location string) {
	binding = saml.HTTPRedirectBinding
	location = sp.GetSSOBindingLocation(binding)
	if location == "" {
		binding = saml.HTTPPostBinding
		location = sp.GetSSOBindingLocation(binding)
	}
	return binding, location
}

func serveMetadata(sp *saml.ServiceProvider, w http.ResponseWriter) error {
	buf, err := xml.MarshalIndent(sp.Metadata(), "", "  ")
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/samlmetadata+xml")
	_, err = w.Write(buf)
	return err
}

func writePostForm(w http.ResponseWriter, form []byte) error {
	w.Header().Add("Content-Security-Policy", ""+
		"default-src; "+
		"script-src 'sha256-AjPdJSbZmeWHnEc5ykvJFay8FTWeTeRbs9dutfZ0HqE='; "+
		"reflected-xss block; referrer no-referrer;")
	w.Header().Add("Content-Type", "text/html")

	var buf bytes.Buffer
	buf.WriteString(`<!DOCTYPE html><html><body>`)
	buf.Write(form)
	buf.WriteString(`</body></html>`)
	_, err := w.Write(buf.Bytes())
	return err
}
