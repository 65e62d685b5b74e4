package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"spendly/internal/core"
	"spendly/internal/storage"
)

// InvestmentWithInterest is an investment annotated with the interest
// accrued as of the moment it was read. The annotation is recomputed on
// every retrieval and never persisted.
type InvestmentWithInterest struct {
	core.Investment
	InterestAmount decimal.Decimal
}

// InvestmentService persists holdings and values them on read.
type InvestmentService struct {
	investments storage.InvestmentStore
	now         func() time.Time
}

func NewInvestmentService(investments storage.InvestmentStore) *InvestmentService {
	return &InvestmentService{investments: investments, now: time.Now}
}

func (s *InvestmentService) Create(ctx context.Context, inv core.Investment) (InvestmentWithInterest, error) {
	if err := inv.Validate(); err != nil {
		return InvestmentWithInterest{}, err
	}
	if err := s.investments.CreateInvestment(ctx, &inv); err != nil {
		return InvestmentWithInterest{}, fmt.Errorf("save investment: %w", err)
	}
	return s.annotate(inv), nil
}

// ListWithInterest returns the owner's investments, each annotated with
// freshly computed interest.
func (s *InvestmentService) ListWithInterest(ctx context.Context, ownerID string) ([]InvestmentWithInterest, error) {
	invs, err := s.investments.ListInvestments(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list investments: %w", err)
	}

	annotated := make([]InvestmentWithInterest, len(invs))
	for i, inv := range invs {
		annotated[i] = s.annotate(inv)
	}
	return annotated, nil
}

func (s *InvestmentService) Get(ctx context.Context, id, ownerID string) (InvestmentWithInterest, error) {
	inv, err := s.investments.GetInvestment(ctx, id)
	if err != nil {
		return InvestmentWithInterest{}, fmt.Errorf("load investment: %w", err)
	}
	if inv.OwnerID != ownerID {
		return InvestmentWithInterest{}, ErrNotOwner
	}
	return s.annotate(inv), nil
}

func (s *InvestmentService) Delete(ctx context.Context, id, ownerID string) error {
	inv, err := s.investments.GetInvestment(ctx, id)
	if err != nil {
		return fmt.Errorf("load investment: %w", err)
	}
	if inv.OwnerID != ownerID {
		return ErrNotOwner
	}
	if err := s.investments.DeleteInvestment(ctx, id); err != nil {
		return fmt.Errorf("delete investment: %w", err)
	}
	return nil
}

func (s *InvestmentService) annotate(inv core.Investment) InvestmentWithInterest {
	return InvestmentWithInterest{
		Investment:     inv,
		InterestAmount: core.ComputeInterest(inv, s.now()),
	}
}
