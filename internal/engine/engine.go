package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"faraid-engine/internal/faraid"
	"faraid-engine/internal/metrics"
	"faraid-engine/internal/model"
	"faraid-engine/internal/zakat"
)

// PriceSource prices the Nisab metals.
type PriceSource interface {
	Prices(ctx context.Context, currency string) (zakat.Prices, error)
}

// Engine wraps the calculators into calculation envelopes: an id, timings,
// an outcome and the messages raised along the way.
type Engine struct {
	faraid  *faraid.Engine
	prices  PriceSource
	metrics *metrics.Metrics
	now     func() time.Time
	newID   func() string
}

// New builds an Engine. prices and m may be nil; without prices a Zakat
// request must carry its own prices.
func New(f *faraid.Engine, prices PriceSource, m *metrics.Metrics) *Engine {
	if f == nil {
		f = faraid.New()
	}
	return &Engine{
		faraid:  f,
		prices:  prices,
		metrics: m,
		now:     time.Now,
		newID:   func() string { return uuid.New().String() },
	}
}

// ProcessInheritance validates and distributes the estate described by req.
func (e *Engine) ProcessInheritance(req *model.InheritanceRequest) *model.InheritanceResponse {
	start := e.now()

	var msgs messages
	result := model.InheritanceResult{Results: []model.HeirShare{}}

	dist, err := e.faraid.Calculate(toHeirs(req.Heirs))
	if err != nil {
		msgs.fromError(err)
	} else {
		result.Results = toShares(dist)
		result.IsAwl = dist.IsAwl
		result.IsRadd = dist.IsRadd
		if dist.IsAwl {
			msgs.add(model.LevelWarning, "AWL_APPLIED",
				"fixed shares exceed the estate; every fixed share was reduced proportionally", "")
		}
		if dist.IsRadd {
			msgs.add(model.LevelWarning, "RADD_APPLIED",
				"residue without a residuary heir was returned to the fixed-share heirs other than the spouse", "")
		}
	}
	result.Messages = msgs.list()

	meta := e.metadata(req.TenantID, model.KindInheritance, start, msgs)
	if e.metrics != nil {
		e.metrics.ObserveCalculation("inheritance", meta.CalculationOutcome, e.now().Sub(start))
		if result.IsAwl {
			e.metrics.IncrementAwl()
		}
		if result.IsRadd {
			e.metrics.IncrementRadd()
		}
	}

	return &model.InheritanceResponse{CalculationMetadata: meta, CalculationResult: result}
}

// ValidateInheritance checks req without distributing anything.
func (e *Engine) ValidateInheritance(req *model.InheritanceRequest) *model.InheritanceResponse {
	start := e.now()

	var msgs messages
	if err := faraid.Validate(toHeirs(req.Heirs)); err != nil {
		msgs.fromError(err)
	}

	meta := e.metadata(req.TenantID, model.KindValidation, start, msgs)
	if e.metrics != nil {
		e.metrics.ObserveCalculation("validation", meta.CalculationOutcome, e.now().Sub(start))
	}

	return &model.InheritanceResponse{
		CalculationMetadata: meta,
		CalculationResult: model.InheritanceResult{
			Messages: msgs.list(),
			Results:  []model.HeirShare{},
		},
	}
}

// ProcessZakat prices the Nisab and assesses the Zakat due on req.Assets.
func (e *Engine) ProcessZakat(ctx context.Context, req *model.ZakatRequest) *model.ZakatResponse {
	start := e.now()

	var msgs messages
	result := model.ZakatResult{}

	if assessment, err := e.assessZakat(ctx, req); err != nil {
		msgs.fromError(err)
	} else {
		result.Assessment = assessment
		if !assessment.AboveNisab {
			msgs.add(model.LevelWarning, "BELOW_NISAB", "net wealth is below the Nisab; no Zakat is due", "")
		}
	}
	result.Messages = msgs.list()

	meta := e.metadata(req.TenantID, model.KindZakat, start, msgs)
	if e.metrics != nil {
		e.metrics.ObserveCalculation("zakat", meta.CalculationOutcome, e.now().Sub(start))
	}

	return &model.ZakatResponse{CalculationMetadata: meta, CalculationResult: result}
}

func (e *Engine) assessZakat(ctx context.Context, req *model.ZakatRequest) (*model.ZakatAssessment, error) {
	standard, err := zakat.ParseStandard(req.Standard)
	if err != nil {
		return nil, &zakat.InputError{Field: "standard", Reason: err.Error()}
	}

	var prices zakat.Prices
	switch {
	case req.Prices != nil:
		prices = zakat.Prices{
			Currency:      req.Currency,
			GoldPerGram:   req.Prices.GoldPerGram,
			SilverPerGram: req.Prices.SilverPerGram,
		}
	case e.prices != nil:
		if prices, err = e.prices.Prices(ctx, req.Currency); err != nil {
			return nil, fmt.Errorf("%w: %v", errPricesUnavailable, err)
		}
	default:
		return nil, errPricesUnavailable
	}

	a, err := zakat.Calculate(zakat.Assets{
		Cash:              req.Assets.Cash,
		GoldGrams:         req.Assets.GoldGrams,
		SilverGrams:       req.Assets.SilverGrams,
		Investments:       req.Assets.Investments,
		BusinessInventory: req.Assets.BusinessInventory,
		Receivables:       req.Assets.Receivables,
		Liabilities:       req.Assets.Liabilities,
	}, prices, standard)
	if err != nil {
		return nil, err
	}

	return &model.ZakatAssessment{
		Currency:      a.Currency,
		Standard:      string(a.Standard),
		GoldPerGram:   prices.GoldPerGram.StringFixed(2),
		SilverPerGram: prices.SilverPerGram.StringFixed(2),
		GoldValue:     a.GoldValue.StringFixed(2),
		SilverValue:   a.SilverValue.StringFixed(2),
		NetWealth:     a.NetWealth.StringFixed(2),
		Nisab:         a.Nisab.StringFixed(2),
		AboveNisab:    a.AboveNisab,
		ZakatDue:      a.Due.StringFixed(2),
	}, nil
}

var errPricesUnavailable = errors.New("metal prices unavailable")

func (e *Engine) metadata(tenantID, kind string, start time.Time, msgs messages) model.CalculationMetadata {
	completed := e.now()
	outcome := model.OutcomeSuccess
	if msgs.critical() {
		outcome = model.OutcomeFailure
	}
	return model.CalculationMetadata{
		CalculationID:          e.newID(),
		TenantID:               tenantID,
		CalculationKind:        kind,
		CalculationStartedAt:   start.UTC().Format(time.RFC3339),
		CalculationCompletedAt: completed.UTC().Format(time.RFC3339),
		CalculationDurationMs:  completed.Sub(start).Milliseconds(),
		CalculationOutcome:     outcome,
	}
}

func toHeirs(in []model.HeirInput) []faraid.Heir {
	heirs := make([]faraid.Heir, len(in))
	for i, h := range in {
		heirs[i] = faraid.Heir{
			ID:       h.ID,
			Relation: faraid.ParseRelation(h.Relation),
			Count:    h.Count,
		}
	}
	return heirs
}

func toShares(d faraid.Distribution) []model.HeirShare {
	out := make([]model.HeirShare, len(d.Results))
	for i, r := range d.Results {
		out[i] = model.HeirShare{
			HeirID:         r.HeirID,
			Heir:           r.Relation.Label(),
			Relation:       string(r.Relation),
			Count:          r.Count,
			Share:          r.Fraction,
			PerPersonShare: r.PerPerson,
			Percentage:     r.Percentage.InexactFloat64(),
			Note:           r.Note,
		}
	}
	return out
}
