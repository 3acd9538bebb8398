// Package rpcclient fetches oracle feed accounts and cluster state from a
// Solana JSON-RPC endpoint.
package rpcclient

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/LeJamon/goPriceRelay/internal/core/feed"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultTimeout bounds a single RPC round trip when none is configured.
const DefaultTimeout = 15 * time.Second

var ErrInvalidCommitment = errors.New("invalid commitment")

// Client wraps a solana-go RPC client with the relay's commitment and
// timeout settings.
type Client struct {
	rpc        *rpc.Client
	commitment rpc.CommitmentType
	timeout    time.Duration
	logger     *zap.Logger
}

// ParseCommitment maps a config string onto an RPC commitment level.
func ParseCommitment(s string) (rpc.CommitmentType, error) {
	switch c := rpc.CommitmentType(s); c {
	case rpc.CommitmentProcessed, rpc.CommitmentConfirmed, rpc.CommitmentFinalized:
		return c, nil
	case "":
		return rpc.CommitmentConfirmed, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidCommitment, s)
	}
}

// New creates a client for endpoint.
func New(endpoint string, commitment rpc.CommitmentType, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		rpc:        rpc.New(endpoint),
		commitment: commitment,
		timeout:    timeout,
		logger:     logger,
	}
}

// FetchFeed returns the raw feed account at key. An account that does not
// exist is reported as feed.ErrUnavailable.
func (c *Client) FetchFeed(ctx context.Context, key solana.PublicKey) (feed.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	out, err := c.rpc.GetAccountInfoWithOpts(ctx, key, &rpc.GetAccountInfoOpts{
		Commitment: c.commitment,
		Encoding:   solana.EncodingBase64,
	})
	if err != nil {
		if errors.Is(err, rpc.ErrNotFound) {
			return feed.Account{}, fmt.Errorf("%w: no account at %s", feed.ErrUnavailable, key)
		}
		return feed.Account{}, fmt.Errorf("fetch feed %s: %w", key, err)
	}
	if out == nil || out.Value == nil {
		return feed.Account{}, fmt.Errorf("%w: no account at %s", feed.ErrUnavailable, key)
	}

	var data []byte
	if out.Value.Data != nil {
		data = out.Value.Data.GetBinary()
	}
	c.logger.Debug("fetched feed",
		zap.Stringer("feed", key),
		zap.Uint64("context_slot", out.Context.Slot),
		zap.Int("bytes", len(data)),
	)
	return feed.Account{
		Key:   key,
		Owner: out.Value.Owner,
		Data:  data,
	}, nil
}

// Slot returns the cluster's current slot at the client's commitment.
func (c *Client) Slot(ctx context.Context) (uint64, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	slot, err := c.rpc.GetSlot(ctx, c.commitment)
	if err != nil {
		return 0, fmt.Errorf("get slot: %w", err)
	}
	return slot, nil
}

// Status is a decoded feed together with how old its result is.
type Status struct {
	Account     feed.Account
	Feed        *feed.PullFeed
	CurrentSlot uint64
	AgeSlots    uint64
	Age         time.Duration
	Stale       bool
}

// FeedStatus fetches the feed and the current slot concurrently and
// decodes the feed.
func (c *Client) FeedStatus(ctx context.Context, key solana.PublicKey) (*Status, error) {
	var (
		account feed.Account
		slot    uint64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		account, err = c.FetchFeed(gctx, key)
		return err
	})
	g.Go(func() error {
		var err error
		slot, err = c.Slot(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	f, err := feed.Decode(account.Data)
	if err != nil {
		return nil, err
	}
	return &Status{
		Account:     account,
		Feed:        f,
		CurrentSlot: slot,
		AgeSlots:    f.Age(slot),
		Age:         f.ApproxAge(slot),
		Stale:       f.Stale(slot),
	}, nil
}
