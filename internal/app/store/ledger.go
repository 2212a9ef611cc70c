// Package store handles coin spending: catalog purchases, the two
// bonus items with engine side effects, and the capped audit log.
package store

import (
	"fmt"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/questforge/questforge/internal/app/profile"
	"github.com/questforge/questforge/internal/domain"
	"github.com/questforge/questforge/internal/infra/metrics"
)

// PurchaseLog is the persistence surface the ledger needs: append with
// cap eviction and newest-first listing.
type PurchaseLog interface {
	InsertPurchase(e domain.PurchaseEntry) error
	ListPurchases(limit int) ([]domain.PurchaseEntry, error)
}

// Ledger debits coins and records purchases.
type Ledger struct {
	profiles *profile.Store
	log      PurchaseLog
	clock    domain.Clock
}

func New(profiles *profile.Store, purchases PurchaseLog, clock domain.Clock) *Ledger {
	return &Ledger{profiles: profiles, log: purchases, clock: clock}
}

// Purchase buys the named catalog item. The balance check and debit
// happen under one profile update, so a purchase either debits in full
// or rejects with ErrInsufficientFunds and changes nothing. Bonus items
// must go through BuyFreeze and BuyGoldenDay, which apply their side
// effects; this entry point only debits and logs.
func (l *Ledger) Purchase(name string) (domain.PurchaseEntry, error) {
	item, ok := domain.FindStoreItem(name)
	if !ok {
		return domain.PurchaseEntry{}, domain.ErrUnknownItem
	}
	return l.buy(item, nil)
}

// BuyFreeze purchases a streak freeze. Holding one already rejects the
// purchase; freezes do not stack.
func (l *Ledger) BuyFreeze() (domain.PurchaseEntry, error) {
	item, _ := domain.FindStoreItem("Streak Freeze")
	if l.profiles.Snapshot().HasFreeze {
		return domain.PurchaseEntry{}, domain.ErrFreezeAlreadyHeld
	}
	return l.buy(item, func(p *domain.UserProfile) error {
		if p.HasFreeze {
			return domain.ErrFreezeAlreadyHeld
		}
		p.HasFreeze = true
		return nil
	})
}

// BuyGoldenDay purchases 24 hours of doubled XP. Buying while a buff
// is active extends it; golden time stacks.
func (l *Ledger) BuyGoldenDay() (domain.PurchaseEntry, error) {
	item, _ := domain.FindStoreItem("Golden Day")
	now := l.clock.Now()
	return l.buy(item, func(p *domain.UserProfile) error {
		p.ExtendGoldenBuff(now)
		return nil
	})
}

// buy debits the item's cost and applies the optional side effect
// inside the same profile update. The audit-log append happens after
// the debit commits; a log write failure is reported but does not
// refund the purchase.
func (l *Ledger) buy(item domain.StoreItem, effect func(*domain.UserProfile) error) (domain.PurchaseEntry, error) {
	var (
		balance   int64
		insuff    bool
		effectErr error
	)
	err := l.profiles.Update(func(p *domain.UserProfile) {
		if p.Coins < item.Cost {
			insuff = true
			return
		}
		if effect != nil {
			if effectErr = effect(p); effectErr != nil {
				return
			}
		}
		p.Coins -= item.Cost
		balance = p.Coins
	})
	if insuff {
		return domain.PurchaseEntry{}, domain.ErrInsufficientFunds
	}
	if effectErr != nil {
		return domain.PurchaseEntry{}, effectErr
	}
	if err != nil {
		return domain.PurchaseEntry{}, err
	}

	entry := domain.PurchaseEntry{
		ID:       uuid.NewString(),
		Date:     domain.LogicalDate(l.clock.Now()),
		ItemName: item.Name,
		Cost:     item.Cost,
		Category: item.Category,
	}
	if err := l.log.InsertPurchase(entry); err != nil {
		log.WithError(err).WithField("item", item.Name).Warn("purchase debited but not recorded in audit log")
		return entry, fmt.Errorf("record purchase: %w", err)
	}

	metrics.CoinsSpent.Add(float64(item.Cost))
	metrics.CoinsBalance.Set(float64(balance))
	metrics.PurchasesTotal.WithLabelValues(string(item.Category)).Inc()
	log.WithFields(log.Fields{
		"item":    item.Name,
		"cost":    item.Cost,
		"balance": balance,
	}).Info("purchase complete")
	return entry, nil
}

// History returns the most recent purchases, newest first. limit <= 0
// means the full retained log.
func (l *Ledger) History(limit int) ([]domain.PurchaseEntry, error) {
	return l.log.ListPurchases(limit)
}
