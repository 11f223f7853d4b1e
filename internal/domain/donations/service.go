package donations

import (
	"context"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"ngo-animal-rescue/internal/platform/validation"

	"github.com/google/uuid"
)

var (
	cardNumberRe = regexp.MustCompile(`^[0-9]{16}$`)
	monthRe      = regexp.MustCompile(`^(0[1-9]|1[0-2])$`)
	yearRe       = regexp.MustCompile(`^[0-9]{2}$`)
	cvvRe        = regexp.MustCompile(`^[0-9]{3,4}$`)
)

type Service struct {
	repo Repository
	rec  validation.Recorder
	now  func() time.Time
}

func NewService(repo Repository, rec validation.Recorder) *Service {
	return &Service{
		repo: repo,
		rec:  rec,
		now:  time.Now,
	}
}

func (f Form) Validate() error {
	errs := validation.Errors{}

	switch {
	case math.IsNaN(f.Amount) || math.IsInf(f.Amount, 0) || f.Amount == 0:
		errs.Add("amount", "Amount is required")
	case f.Amount < 0:
		errs.Add("amount", "Amount must be positive")
	}

	errs.Required("donorName", f.DonorName, "Name is required")
	errs.Email("email", f.Email, "Email is required", "Invalid email format")

	if errs.Required("donationType", string(f.DonationType), "Please select donation type") {
		errs.Check(f.DonationType.Valid(), "donationType", "Please select donation type")
	}
	if errs.Required("paymentMethod", string(f.PaymentMethod), "Please select payment method") {
		errs.Check(f.PaymentMethod.Valid(), "paymentMethod", "Please select payment method")
	}
	if f.IsRecurring {
		errs.Check(f.Frequency.Valid(), "frequency", "Please select frequency for recurring donation")
	}
	return errs.Err()
}

// ValidateAt valida la tarjeta; el vencimiento se compara contra now (fin de mes inclusive).
func (c CardForm) ValidateAt(now time.Time) error {
	errs := validation.Errors{}

	number := cardDigits(c.CardNumber)
	if errs.Required("cardNumber", number, "Card number is required") {
		errs.Check(cardNumberRe.MatchString(number), "cardNumber", "Card number must be 16 digits")
	}
	errs.Required("cardName", c.CardName, "Name on card is required")

	monthOK := false
	if errs.Required("expiryMonth", c.ExpiryMonth, "Expiry month is required") {
		monthOK = errs.Check(monthRe.MatchString(strings.TrimSpace(c.ExpiryMonth)), "expiryMonth", "Must be a valid month (01-12)")
	}
	yearOK := false
	if errs.Required("expiryYear", c.ExpiryYear, "Expiry year is required") {
		yearOK = errs.Check(yearRe.MatchString(strings.TrimSpace(c.ExpiryYear)), "expiryYear", "Must be a 2-digit year")
	}
	if monthOK && yearOK {
		m, _ := strconv.Atoi(strings.TrimSpace(c.ExpiryMonth))
		y, _ := strconv.Atoi(strings.TrimSpace(c.ExpiryYear))
		y += 2000

		cy, cm := now.Year(), int(now.Month())
		errs.Check(y > cy || (y == cy && m >= cm), "expiryYear", "Card has expired")
	}

	if errs.Required("cvv", c.CVV, "CVV is required") {
		errs.Check(cvvRe.MatchString(strings.TrimSpace(c.CVV)), "cvv", "CVV must be 3 or 4 digits")
	}
	return errs.Err()
}

// Donate valida y registra la donación. El pago es simulado: nunca se cobra nada.
func (s *Service) Donate(ctx context.Context, req Request) (Donation, error) {
	f := req.Donation
	f.DonationType = Type(strings.ToLower(strings.TrimSpace(string(f.DonationType))))
	f.PaymentMethod = PaymentMethod(strings.ToLower(strings.TrimSpace(string(f.PaymentMethod))))
	f.Frequency = Frequency(strings.ToLower(strings.TrimSpace(string(f.Frequency))))

	errs := validation.Errors{}
	mergeInto(errs, "", f.Validate())

	var last4 string
	if f.PaymentMethod == MethodCard {
		if req.Card == nil {
			errs.Add("card", "Card details are required")
		} else {
			mergeInto(errs, "card.", req.Card.ValidateAt(s.now()))
			if n := cardDigits(req.Card.CardNumber); len(n) >= 4 {
				last4 = n[len(n)-4:]
			}
		}
	}
	if err := errs.Err(); err != nil {
		return Donation{}, validation.Reject(s.rec, "donation", err)
	}

	d := Donation{
		ID:            uuid.NewString(),
		DonorName:     strings.TrimSpace(f.DonorName),
		DonorEmail:    strings.TrimSpace(f.Email),
		Amount:        math.Round(f.Amount*100) / 100,
		Type:          f.DonationType,
		PaymentMethod: f.PaymentMethod,
		IsRecurring:   f.IsRecurring,
		Payment:       Payment{Status: PaymentSimulated, Last4: last4},
		Date:          s.now(),
	}
	if f.IsRecurring {
		d.Frequency = f.Frequency
	}

	if err := s.repo.Create(ctx, d); err != nil {
		return Donation{}, err
	}
	return d, nil
}

// List: más recientes primero.
func (s *Service) List(ctx context.Context) ([]Donation, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Date.After(items[j].Date)
	})
	return items, nil
}

func (s *Service) Total(ctx context.Context) (float64, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return 0, err
	}
	var total float64
	for _, d := range items {
		total += d.Amount
	}
	return math.Round(total*100) / 100, nil
}

func cardDigits(s string) string {
	return strings.NewReplacer(" ", "", "-", "").Replace(strings.TrimSpace(s))
}

func mergeInto(dst validation.Errors, prefix string, err error) {
	fields, ok := validation.Fields(err)
	if !ok {
		return
	}
	for k, v := range fields {
		dst.Add(prefix+k, v)
	}
}
