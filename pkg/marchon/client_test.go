package marchon

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cloud-payto/optical-sub002/internal/resilience"
)

func fastRetry() resilience.RetryConfig {
	return resilience.RetryConfig{MaxAttempts: 3, Delay: time.Millisecond}
}

func TestRecord_UnmarshalFieldVariants(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want Record
	}{
		{
			"canonical names",
			`{"styleName":"FLEXON E1088","colorCode":"412","colorName":"NAVY","eye":"55","bridge":"19","temple":"145","upc":"00883121996441","price":89.5}`,
			Record{StyleName: "FLEXON E1088", ColorCode: "412", ColorName: "NAVY", Eye: "55", Bridge: "19", Temple: "145", UPC: "00883121996441", Price: 89.5},
		},
		{
			"alternate names",
			`{"style":"FLEXON E1088","colourCode":"412","color":"NAVY","eyeSize":55,"dbl":19,"templeLength":"145","barcode":"00883121996441","whsPrice":"89.50"}`,
			Record{StyleName: "FLEXON E1088", ColorCode: "412", ColorName: "NAVY", Eye: "55", Bridge: "19", Temple: "145", UPC: "00883121996441", Price: 89.5},
		},
		{
			"upcCode variant with availability",
			`{"modelName":"AIRLOCK 2002","upcCode":"00886895437561","availability":"BACKORDER"}`,
			Record{StyleName: "AIRLOCK 2002", UPC: "00886895437561", Status: "BACKORDER"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var got Record
			require.NoError(t, json.Unmarshal([]byte(tt.in), &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSearch_Success(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/search", r.URL.Path)
		assert.Equal(t, "FLEXON E1088", r.URL.Query().Get("q"))
		w.Write([]byte(`{"results":[
			{"styleName":"FLEXON E1088","colorCode":"412","eye":"55","upc":"00883121996441"},
			{"style":"FLEXON E1088","colourCode":"033","eyeSize":57,"barcode":"00883121996458"}
		]}`))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL), WithRetry(fastRetry()))
	got, err := client.Search(context.Background(), "FLEXON E1088")

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "412", got[0].ColorCode)
	assert.Equal(t, "033", got[1].ColorCode)
	assert.Equal(t, "57", got[1].Eye)
	assert.Equal(t, "00883121996458", got[1].UPC)
}

func TestSearch_RetriesThenSucceeds(t *testing.T) {
	t.Parallel()

	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"results":[]}`))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL), WithRetry(fastRetry()))
	got, err := client.Search(context.Background(), "q")

	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, int32(2), attempts.Load())
}

func TestSearch_ErrorAfterExhaustion(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusGatewayTimeout)
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL), WithRetry(fastRetry()))
	_, err := client.Search(context.Background(), "q")

	require.Error(t, err)
	assert.True(t, resilience.IsTransient(err))
}
