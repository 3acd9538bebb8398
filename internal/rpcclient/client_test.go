package rpcclient

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/LeJamon/goPriceRelay/internal/core/feed"
	"github.com/LeJamon/goPriceRelay/internal/core/feed/feedtest"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rpcRequest struct {
	ID     json.RawMessage `json:"id"`
	Method string          `json:"method"`
}

// stubNode answers getAccountInfo with account (or null) and getSlot
// with slot.
type stubNode struct {
	account []byte
	slot    uint64
	calls   atomic.Int32
}

func (n *stubNode) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	n.calls.Add(1)

	var req rpcRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var result any
	switch req.Method {
	case "getAccountInfo":
		var value any
		if n.account != nil {
			value = map[string]any{
				"data":       []string{base64.StdEncoding.EncodeToString(n.account), "base64"},
				"executable": false,
				"lamports":   5_000_000,
				"owner":      feedtest.OnDemandProgramID.String(),
			}
		}
		result = map[string]any{
			"context": map[string]any{"slot": n.slot},
			"value":   value,
		}
	case "getSlot":
		result = n.slot
	default:
		http.Error(w, "unexpected method "+req.Method, http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"jsonrpc": "2.0",
		"id":      req.ID,
		"result":  result,
	})
}

func newTestClient(t *testing.T, node *stubNode) *Client {
	t.Helper()
	srv := httptest.NewServer(node)
	t.Cleanup(srv.Close)
	return New(srv.URL, rpc.CommitmentConfirmed, time.Second, nil)
}

func TestFetchFeed(t *testing.T) {
	data := feedtest.NewBuilder("65000.00", 1000).Bytes()
	c := newTestClient(t, &stubNode{account: data, slot: 1010})

	account, err := c.FetchFeed(context.Background(), feedtest.FeedAddress)
	require.NoError(t, err)
	assert.Equal(t, feedtest.FeedAddress, account.Key)
	assert.Equal(t, feedtest.OnDemandProgramID, account.Owner)
	assert.Equal(t, data, account.Data)
}

func TestFetchFeed_Missing(t *testing.T) {
	c := newTestClient(t, &stubNode{slot: 1})

	_, err := c.FetchFeed(context.Background(), feedtest.FeedAddress)
	assert.ErrorIs(t, err, feed.ErrUnavailable)
}

func TestFetchFeed_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)
	c := New(srv.URL, rpc.CommitmentConfirmed, time.Second, nil)

	_, err := c.FetchFeed(context.Background(), feedtest.FeedAddress)
	require.Error(t, err)
	assert.NotErrorIs(t, err, feed.ErrUnavailable)
}

func TestSlot(t *testing.T) {
	c := newTestClient(t, &stubNode{slot: 123456})

	slot, err := c.Slot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(123456), slot)
}

func TestFeedStatus(t *testing.T) {
	b := feedtest.NewBuilder("65000.00", 1000)
	b.MaxStaleness = 100

	t.Run("Fresh", func(t *testing.T) {
		node := &stubNode{account: b.Bytes(), slot: 1050}
		c := newTestClient(t, node)

		status, err := c.FeedStatus(context.Background(), feedtest.FeedAddress)
		require.NoError(t, err)
		assert.Equal(t, uint64(1050), status.CurrentSlot)
		assert.Equal(t, uint64(50), status.AgeSlots)
		assert.Equal(t, 20*time.Second, status.Age)
		assert.False(t, status.Stale)
		assert.Equal(t, "65000", status.Feed.Value.String())
		assert.Equal(t, int32(2), node.calls.Load())
	})

	t.Run("Stale", func(t *testing.T) {
		c := newTestClient(t, &stubNode{account: b.Bytes(), slot: 1200})

		status, err := c.FeedStatus(context.Background(), feedtest.FeedAddress)
		require.NoError(t, err)
		assert.True(t, status.Stale)
	})

	t.Run("Malformed account", func(t *testing.T) {
		c := newTestClient(t, &stubNode{account: []byte{1, 2, 3}, slot: 1200})

		_, err := c.FeedStatus(context.Background(), feedtest.FeedAddress)
		assert.ErrorIs(t, err, feed.ErrMalformedRecord)
	})
}

func TestParseCommitment(t *testing.T) {
	tt := []struct {
		in       string
		expected rpc.CommitmentType
		wantErr  bool
	}{
		{in: "processed", expected: rpc.CommitmentProcessed},
		{in: "confirmed", expected: rpc.CommitmentConfirmed},
		{in: "finalized", expected: rpc.CommitmentFinalized},
		{in: "", expected: rpc.CommitmentConfirmed},
		{in: "max", wantErr: true},
	}

	for _, tc := range tt {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseCommitment(tc.in)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidCommitment)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}
