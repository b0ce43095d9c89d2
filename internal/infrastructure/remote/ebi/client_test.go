package ebi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const entityXML = `<?xml version="1.0" encoding="UTF-8"?>
<S:Envelope xmlns:S="http://schemas.xmlsoap.org/soap/envelope/">
  <S:Body>
    <getCompleteEntityResponse xmlns="https://www.ebi.ac.uk/webservices/chebi">
      <return>
        <chebiId>CHEBI:15996</chebiId>
        <chebiAsciiName>GTP</chebiAsciiName>
        <inchiKey>XKMLYUALXHKNFT-UUOKFMHZSA-N</inchiKey>
      </return>
    </getCompleteEntityResponse>
  </S:Body>
</S:Envelope>`

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	c := NewClient(Config{BaseURL: srv.URL, RatePerSecond: 100, Timeout: 2 * time.Second}, nil)
	return c, srv
}

func TestFetchChEBIEntry(t *testing.T) {
	var gotQuery string
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("chebiId")
		w.Write([]byte(entityXML))
	})
	defer srv.Close()
	defer c.Close()

	entry, err := c.FetchChEBIEntry(context.Background(), "15996")
	require.NoError(t, err)
	require.NotNil(t, entry)

	assert.Equal(t, "CHEBI:15996", gotQuery, "bare IDs are prefixed on the wire")
	assert.Equal(t, "CHEBI:15996", entry.ID)
	assert.Equal(t, "GTP", entry.Name)
	assert.Equal(t, "XKMLYUALXHKNFT-UUOKFMHZSA-N", entry.InChIKey)
}

func TestFetchChEBIEntryNon200IsNotFound(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	defer srv.Close()
	defer c.Close()

	entry, err := c.FetchChEBIEntry(context.Background(), "15996")
	require.NoError(t, err, "non-200 is a soft miss, not an error")
	assert.Nil(t, entry)
}

func TestFetchChEBIEntryMalformedIsNotFound(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("<html>maintenance page</html>"))
	})
	defer srv.Close()
	defer c.Close()

	entry, err := c.FetchChEBIEntry(context.Background(), "15996")
	require.NoError(t, err)
	assert.Nil(t, entry)
}

func TestFetchChEBIEntryCancellation(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(entityXML))
	})
	defer srv.Close()
	defer c.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.FetchChEBIEntry(ctx, "15996")
	assert.Error(t, err)
}

//Personal.AI order the ending
