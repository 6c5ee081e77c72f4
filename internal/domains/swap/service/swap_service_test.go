package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookModel "bookswap-backend/internal/domains/book/model"
	"bookswap-backend/internal/domains/swap/model"
)

type fixture struct {
	repo    *memRepository
	service ServiceInterface

	giver    uuid.UUID
	receiver uuid.UUID
	target   uuid.UUID
}

func newFixture(t *testing.T, receiverPoints int) *fixture {
	t.Helper()

	repo := newMemRepository()
	giver := repo.addUser(0)
	receiver := repo.addUser(receiverPoints)
	target := repo.addBook(giver, bookModel.BookStatusAvailable)

	return &fixture{
		repo:     repo,
		service:  NewSwapService(repo),
		giver:    giver,
		receiver: receiver,
		target:   target,
	}
}

func (f *fixture) requestPointSwap(t *testing.T) *model.SwapResponse {
	t.Helper()

	resp, err := f.service.Request(context.Background(), f.receiver, model.RequestSwapRequest{
		TargetBookID: f.target,
	})
	require.NoError(t, err)
	return resp
}

func TestRequestPointPath(t *testing.T) {
	f := newFixture(t, 1)

	resp := f.requestPointSwap(t)

	assert.Equal(t, model.SwapStatusRequested, resp.Status)
	assert.Equal(t, f.giver, resp.GiverID)
	assert.Equal(t, f.receiver, resp.ReceiverID)
	assert.Nil(t, resp.OfferedBookID)

	assert.Equal(t, bookModel.BookStatusReserved, f.repo.book(f.target).Status)
	assert.Equal(t, 0, f.repo.balance(f.receiver), "one point debited at request time")
	assert.Equal(t, 0, f.repo.balance(f.giver), "giver earns nothing until completion")
}

func TestRequestBarterPath(t *testing.T) {
	f := newFixture(t, 0)
	offered := f.repo.addBook(f.receiver, bookModel.BookStatusAvailable)

	resp, err := f.service.Request(context.Background(), f.receiver, model.RequestSwapRequest{
		TargetBookID:  f.target,
		OfferedBookID: &offered,
	})
	require.NoError(t, err)

	require.NotNil(t, resp.OfferedBookID)
	assert.Equal(t, offered, *resp.OfferedBookID)
	assert.Equal(t, bookModel.BookStatusReserved, f.repo.book(f.target).Status)
	assert.Equal(t, bookModel.BookStatusReserved, f.repo.book(offered).Status)
	assert.Equal(t, 0, f.repo.balance(f.receiver), "barter never touches points")
}

func TestRequestInsufficientPoints(t *testing.T) {
	f := newFixture(t, 0)

	_, err := f.service.Request(context.Background(), f.receiver, model.RequestSwapRequest{
		TargetBookID: f.target,
	})
	require.ErrorIs(t, err, model.ErrInsufficientPoints)

	// The failed request must leave no trace.
	assert.Equal(t, bookModel.BookStatusAvailable, f.repo.book(f.target).Status)
	assert.Equal(t, 0, f.repo.balance(f.receiver))
}

func TestRequestOwnBook(t *testing.T) {
	f := newFixture(t, 1)

	_, err := f.service.Request(context.Background(), f.giver, model.RequestSwapRequest{
		TargetBookID: f.target,
	})
	require.ErrorIs(t, err, model.ErrSelfSwap)
	assert.Equal(t, bookModel.BookStatusAvailable, f.repo.book(f.target).Status)
}

func TestRequestOfferedBookNotOwned(t *testing.T) {
	f := newFixture(t, 0)
	stranger := f.repo.addUser(0)
	strangersBook := f.repo.addBook(stranger, bookModel.BookStatusAvailable)

	_, err := f.service.Request(context.Background(), f.receiver, model.RequestSwapRequest{
		TargetBookID:  f.target,
		OfferedBookID: &strangersBook,
	})
	require.ErrorIs(t, err, model.ErrNotOwner)
	assert.Equal(t, bookModel.BookStatusAvailable, f.repo.book(f.target).Status)
	assert.Equal(t, bookModel.BookStatusAvailable, f.repo.book(strangersBook).Status)
}

func TestRequestOfferedEqualsTarget(t *testing.T) {
	f := newFixture(t, 0)

	_, err := f.service.Request(context.Background(), f.receiver, model.RequestSwapRequest{
		TargetBookID:  f.target,
		OfferedBookID: &f.target,
	})
	require.Error(t, err)
}

func TestRequestUnknownBook(t *testing.T) {
	f := newFixture(t, 1)

	_, err := f.service.Request(context.Background(), f.receiver, model.RequestSwapRequest{
		TargetBookID: uuid.New(),
	})
	require.ErrorIs(t, err, bookModel.ErrBookNotFound)
}

func TestConcurrentRequestsSingleWinner(t *testing.T) {
	f := newFixture(t, 1)
	second := f.repo.addUser(1)

	first := f.requestPointSwap(t)
	assert.Equal(t, model.SwapStatusRequested, first.Status)

	// The book is now RESERVED, so the second requester must lose and
	// keep their point.
	_, err := f.service.Request(context.Background(), second, model.RequestSwapRequest{
		TargetBookID: f.target,
	})
	require.ErrorIs(t, err, bookModel.ErrBookNotAvailable)
	assert.Equal(t, 1, f.repo.balance(second))
}

func TestFullLifecyclePointPath(t *testing.T) {
	f := newFixture(t, 1)
	ctx := context.Background()

	swap := f.requestPointSwap(t)

	accepted, err := f.service.Accept(ctx, f.giver, swap.ID)
	require.NoError(t, err)
	assert.Equal(t, model.SwapStatusAccepted, accepted.Status)

	shipped, err := f.service.Ship(ctx, f.giver, swap.ID, "TRK-12345")
	require.NoError(t, err)
	assert.Equal(t, model.SwapStatusShipped, shipped.Status)
	require.NotNil(t, shipped.TrackingNumber)
	assert.Equal(t, "TRK-12345", *shipped.TrackingNumber)

	completed, err := f.service.Confirm(ctx, f.receiver, swap.ID)
	require.NoError(t, err)
	assert.Equal(t, model.SwapStatusCompleted, completed.Status)

	// Final ledger state: the book belongs to the receiver and the
	// giver earned their point.
	book := f.repo.book(f.target)
	assert.Equal(t, bookModel.BookStatusTransferred, book.Status)
	assert.Equal(t, f.receiver, book.OwnerID)
	assert.Equal(t, 1, f.repo.balance(f.giver))
	assert.Equal(t, 0, f.repo.balance(f.receiver))
}

func TestFullLifecycleBarterPath(t *testing.T) {
	f := newFixture(t, 0)
	ctx := context.Background()
	offered := f.repo.addBook(f.receiver, bookModel.BookStatusAvailable)

	swap, err := f.service.Request(ctx, f.receiver, model.RequestSwapRequest{
		TargetBookID:  f.target,
		OfferedBookID: &offered,
	})
	require.NoError(t, err)

	_, err = f.service.Accept(ctx, f.giver, swap.ID)
	require.NoError(t, err)
	_, err = f.service.Ship(ctx, f.giver, swap.ID, "TRK-777")
	require.NoError(t, err)
	_, err = f.service.Confirm(ctx, f.receiver, swap.ID)
	require.NoError(t, err)

	// Both copies change hands on completion.
	target := f.repo.book(f.target)
	assert.Equal(t, bookModel.BookStatusTransferred, target.Status)
	assert.Equal(t, f.receiver, target.OwnerID)

	offeredBook := f.repo.book(offered)
	assert.Equal(t, bookModel.BookStatusTransferred, offeredBook.Status)
	assert.Equal(t, f.giver, offeredBook.OwnerID)

	assert.Equal(t, 1, f.repo.balance(f.giver))
}

func TestDeclineRefundsPointPath(t *testing.T) {
	f := newFixture(t, 1)
	ctx := context.Background()

	swap := f.requestPointSwap(t)

	declined, err := f.service.Decline(ctx, f.giver, swap.ID)
	require.NoError(t, err)
	assert.Equal(t, model.SwapStatusDeclined, declined.Status)

	assert.Equal(t, bookModel.BookStatusAvailable, f.repo.book(f.target).Status)
	assert.Equal(t, 1, f.repo.balance(f.receiver), "debit reversed on decline")
	assert.Equal(t, 0, f.repo.balance(f.giver))
}

func TestDeclineReleasesBarterBooks(t *testing.T) {
	f := newFixture(t, 0)
	ctx := context.Background()
	offered := f.repo.addBook(f.receiver, bookModel.BookStatusAvailable)

	swap, err := f.service.Request(ctx, f.receiver, model.RequestSwapRequest{
		TargetBookID:  f.target,
		OfferedBookID: &offered,
	})
	require.NoError(t, err)

	_, err = f.service.Decline(ctx, f.giver, swap.ID)
	require.NoError(t, err)

	assert.Equal(t, bookModel.BookStatusAvailable, f.repo.book(f.target).Status)
	assert.Equal(t, bookModel.BookStatusAvailable, f.repo.book(offered).Status)
}

func TestTransitionAuthorization(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		op   func(f *fixture, actor, swapID uuid.UUID) error
		// actor selects who attempts the transition
		actor func(f *fixture) uuid.UUID
	}{
		{
			name: "receiver cannot accept",
			op: func(f *fixture, actor, id uuid.UUID) error {
				_, err := f.service.Accept(ctx, actor, id)
				return err
			},
			actor: func(f *fixture) uuid.UUID { return f.receiver },
		},
		{
			name: "receiver cannot decline",
			op: func(f *fixture, actor, id uuid.UUID) error {
				_, err := f.service.Decline(ctx, actor, id)
				return err
			},
			actor: func(f *fixture) uuid.UUID { return f.receiver },
		},
		{
			name: "stranger cannot accept",
			op: func(f *fixture, actor, id uuid.UUID) error {
				_, err := f.service.Accept(ctx, actor, id)
				return err
			},
			actor: func(f *fixture) uuid.UUID { return f.repo.addUser(0) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, 1)
			swap := f.requestPointSwap(t)

			err := tt.op(f, tt.actor(f), swap.ID)
			require.ErrorIs(t, err, model.ErrForbidden)

			assert.Equal(t, model.SwapStatusRequested, f.repo.swap(swap.ID).Status,
				"a rejected attempt must not change the status")
		})
	}
}

func TestGiverCannotConfirm(t *testing.T) {
	f := newFixture(t, 1)
	ctx := context.Background()

	swap := f.requestPointSwap(t)
	_, err := f.service.Accept(ctx, f.giver, swap.ID)
	require.NoError(t, err)
	_, err = f.service.Ship(ctx, f.giver, swap.ID, "TRK-1")
	require.NoError(t, err)

	_, err = f.service.Confirm(ctx, f.giver, swap.ID)
	require.ErrorIs(t, err, model.ErrForbidden)
	assert.Equal(t, model.SwapStatusShipped, f.repo.swap(swap.ID).Status)
}

func TestOutOfOrderTransitions(t *testing.T) {
	f := newFixture(t, 1)
	ctx := context.Background()

	swap := f.requestPointSwap(t)

	// Skipping states is rejected.
	_, err := f.service.Ship(ctx, f.giver, swap.ID, "TRK-1")
	require.ErrorIs(t, err, model.ErrInvalidState)

	_, err = f.service.Confirm(ctx, f.receiver, swap.ID)
	require.ErrorIs(t, err, model.ErrInvalidState)

	// Repeating a state is rejected too.
	_, err = f.service.Accept(ctx, f.giver, swap.ID)
	require.NoError(t, err)
	_, err = f.service.Accept(ctx, f.giver, swap.ID)
	require.ErrorIs(t, err, model.ErrInvalidState)
}

func TestTerminalStatesAreFinal(t *testing.T) {
	f := newFixture(t, 1)
	ctx := context.Background()

	swap := f.requestPointSwap(t)
	_, err := f.service.Decline(ctx, f.giver, swap.ID)
	require.NoError(t, err)

	_, err = f.service.Accept(ctx, f.giver, swap.ID)
	require.ErrorIs(t, err, model.ErrInvalidState)
	_, err = f.service.Decline(ctx, f.giver, swap.ID)
	require.ErrorIs(t, err, model.ErrInvalidState)
}

func TestShipRequiresTracking(t *testing.T) {
	f := newFixture(t, 1)
	ctx := context.Background()

	swap := f.requestPointSwap(t)
	_, err := f.service.Accept(ctx, f.giver, swap.ID)
	require.NoError(t, err)

	_, err = f.service.Ship(ctx, f.giver, swap.ID, "   ")
	require.ErrorIs(t, err, model.ErrMissingTracking)
	assert.Equal(t, model.SwapStatusAccepted, f.repo.swap(swap.ID).Status)
}

func TestTransitionUnknownSwap(t *testing.T) {
	f := newFixture(t, 1)

	_, err := f.service.Accept(context.Background(), f.giver, uuid.New())
	require.ErrorIs(t, err, model.ErrSwapNotFound)
}

func TestListMine(t *testing.T) {
	f := newFixture(t, 1)
	ctx := context.Background()

	swap := f.requestPointSwap(t)

	for _, userID := range []uuid.UUID{f.giver, f.receiver} {
		swaps, err := f.service.ListMine(ctx, userID)
		require.NoError(t, err)
		require.Len(t, swaps, 1)
		assert.Equal(t, swap.ID, swaps[0].ID)
	}

	outsider := f.repo.addUser(0)
	swaps, err := f.service.ListMine(ctx, outsider)
	require.NoError(t, err)
	assert.Empty(t, swaps)
}
