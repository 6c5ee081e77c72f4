package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	bookModel "bookswap-backend/internal/domains/book/model"
	"bookswap-backend/internal/domains/swap/model"
	"bookswap-backend/internal/domains/swap/policy"
	"bookswap-backend/internal/domains/swap/repository"
	"bookswap-backend/pkg/logger"
)

type swapService struct {
	repo repository.Repository
}

func NewSwapService(repo repository.Repository) ServiceInterface {
	return &swapService{
		repo: repo,
	}
}

func (s *swapService) Request(ctx context.Context, actor uuid.UUID, req model.RequestSwapRequest) (*model.SwapResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var created *model.Swap

	err := s.repo.InTx(ctx, func(st repository.Store) error {
		target, err := st.BookForUpdate(ctx, req.TargetBookID)
		if err != nil {
			return err
		}
		if target.OwnerID == actor {
			return model.ErrSelfSwap
		}
		if !target.IsAvailable() {
			return bookModel.ErrBookNotAvailable
		}

		swap := &model.Swap{
			ID:           uuid.New(),
			TargetBookID: target.ID,
			GiverID:      target.OwnerID,
			ReceiverID:   actor,
			Status:       model.SwapStatusRequested,
		}

		if req.OfferedBookID != nil {
			offered, err := st.BookForUpdate(ctx, *req.OfferedBookID)
			if err != nil {
				return err
			}
			if offered.OwnerID != actor {
				return model.ErrNotOwner
			}
			if !offered.IsAvailable() {
				return bookModel.ErrBookNotAvailable
			}
			if err := st.ReserveBook(ctx, offered.ID); err != nil {
				return err
			}
			swap.OfferedBookID = req.OfferedBookID
		} else {
			if err := st.DebitPoints(ctx, actor, 1); err != nil {
				return err
			}
		}

		if err := st.ReserveBook(ctx, target.ID); err != nil {
			return err
		}

		if err := st.CreateSwap(ctx, swap); err != nil {
			return err
		}

		created = swap
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("swap requested", map[string]interface{}{
		"swap_id":  created.ID,
		"giver":    created.GiverID,
		"receiver": created.ReceiverID,
		"barter":   created.IsBarter(),
	})

	resp := created.ToResponse()
	return &resp, nil
}

func (s *swapService) Accept(ctx context.Context, actor, swapID uuid.UUID) (*model.SwapResponse, error) {
	return s.transition(ctx, actor, swapID, policy.TransitionAccept, model.SwapStatusAccepted,
		func(context.Context, repository.Store, *model.Swap) error { return nil })
}

func (s *swapService) Decline(ctx context.Context, actor, swapID uuid.UUID) (*model.SwapResponse, error) {
	// Compensation: reserved books go back to AVAILABLE and a
	// point-path debit is reversed, so a declined swap leaves both
	// ledgers exactly as they were before the request.
	return s.transition(ctx, actor, swapID, policy.TransitionDecline, model.SwapStatusDeclined,
		func(ctx context.Context, st repository.Store, swap *model.Swap) error {
			if err := st.ReleaseBook(ctx, swap.TargetBookID); err != nil {
				return err
			}
			if swap.IsBarter() {
				return st.ReleaseBook(ctx, *swap.OfferedBookID)
			}
			return st.CreditPoints(ctx, swap.ReceiverID, 1)
		})
}

func (s *swapService) Ship(ctx context.Context, actor, swapID uuid.UUID, trackingNumber string) (*model.SwapResponse, error) {
	trackingNumber = strings.TrimSpace(trackingNumber)
	if trackingNumber == "" {
		return nil, model.ErrMissingTracking
	}

	return s.transition(ctx, actor, swapID, policy.TransitionShip, model.SwapStatusShipped,
		func(_ context.Context, _ repository.Store, swap *model.Swap) error {
			swap.TrackingNumber = &trackingNumber
			return nil
		})
}

func (s *swapService) Confirm(ctx context.Context, actor, swapID uuid.UUID) (*model.SwapResponse, error) {
	return s.transition(ctx, actor, swapID, policy.TransitionConfirm, model.SwapStatusCompleted,
		func(ctx context.Context, st repository.Store, swap *model.Swap) error {
			if err := st.FinalizeBook(ctx, swap.TargetBookID, swap.ReceiverID); err != nil {
				return err
			}
			if swap.IsBarter() {
				if err := st.FinalizeBook(ctx, *swap.OfferedBookID, swap.GiverID); err != nil {
					return err
				}
			}
			// The giver earns one point on every completed swap,
			// funding their next point-path request.
			return st.CreditPoints(ctx, swap.GiverID, 1)
		})
}

// transition is the shared skeleton of every non-Request operation:
// lock the swap row, check the authorization table, check the state
// precondition, apply ledger effects, persist the new status.
func (s *swapService) transition(
	ctx context.Context,
	actor, swapID uuid.UUID,
	t policy.Transition,
	next model.SwapStatus,
	apply func(context.Context, repository.Store, *model.Swap) error,
) (*model.SwapResponse, error) {
	var updated *model.Swap

	err := s.repo.InTx(ctx, func(st repository.Store) error {
		swap, err := st.SwapForUpdate(ctx, swapID)
		if err != nil {
			return err
		}

		if !policy.CanPerform(actor, swap, t) {
			return model.ErrForbidden
		}
		if !swap.Status.CanTransitionTo(next) {
			return model.ErrInvalidState
		}

		if err := apply(ctx, st, swap); err != nil {
			return err
		}

		swap.Status = next
		if err := st.UpdateSwap(ctx, swap); err != nil {
			return err
		}

		updated = swap
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("swap transitioned", map[string]interface{}{
		"swap_id":    updated.ID,
		"transition": string(t),
		"status":     updated.Status.String(),
	})

	resp := updated.ToResponse()
	return &resp, nil
}

func (s *swapService) ListMine(ctx context.Context, actor uuid.UUID) ([]model.SwapResponse, error) {
	swaps, err := s.repo.ListByUser(ctx, actor)
	if err != nil {
		return nil, err
	}

	responses := make([]model.SwapResponse, 0, len(swaps))
	for i := range swaps {
		responses = append(responses, swaps[i].ToResponse())
	}

	return responses, nil
}
