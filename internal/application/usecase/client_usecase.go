package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Gimnasio-api/internal/application/dto"
	"github.com/jhoicas/Gimnasio-api/internal/domain"
	"github.com/jhoicas/Gimnasio-api/internal/domain/entity"
	"github.com/jhoicas/Gimnasio-api/internal/domain/membership"
	"github.com/jhoicas/Gimnasio-api/internal/domain/repository"
	"github.com/jhoicas/Gimnasio-api/pkg/textutil"
)

// ClientUseCase inscripción, renovación y seguimiento de membresías de clientes.
type ClientUseCase struct {
	txRunner     TxRunner
	clientRepo   repository.ClientRepository
	paymentRepo  repository.ClientPaymentRepository
	expiringDays int
	loc          *time.Location
	now          func() time.Time
}

// NewClientUseCase construye el caso de uso. expiringDays define el estado "por vencer".
func NewClientUseCase(
	txRunner TxRunner,
	clientRepo repository.ClientRepository,
	paymentRepo repository.ClientPaymentRepository,
	expiringDays int,
	loc *time.Location,
) *ClientUseCase {
	if expiringDays < 0 {
		expiringDays = membership.DefaultExpiringDays
	}
	if loc == nil {
		loc = time.UTC
	}
	return &ClientUseCase{
		txRunner:     txRunner,
		clientRepo:   clientRepo,
		paymentRepo:  paymentRepo,
		expiringDays: expiringDays,
		loc:          loc,
		now:          time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *ClientUseCase) WithClock(now func() time.Time) *ClientUseCase {
	uc.now = now
	return uc
}

func (uc *ClientUseCase) today() time.Time {
	return membership.Date(uc.now().In(uc.loc))
}

// Create inscribe un cliente y registra el pago inicial en la misma transacción.
func (uc *ClientUseCase) Create(ctx context.Context, userID int64, in dto.CreateClientRequest) (*dto.ClientResponse, error) {
	cedula := strings.TrimSpace(in.Cedula)
	firstName := strings.TrimSpace(in.FirstName)
	if cedula == "" || firstName == "" || in.PlanID <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if err := validatePayment(in.Payment); err != nil {
		return nil, err
	}
	today := uc.today()
	registration := today
	if in.RegistrationDate != nil {
		registration = membership.Date(*in.RegistrationDate)
	}
	now := uc.now()

	var client *entity.Client
	err := uc.txRunner.Run(ctx, func(repos repository.TxRepos) error {
		plan, err := activePlan(ctx, repos.Plans, in.PlanID)
		if err != nil {
			return err
		}
		existing, err := repos.Clients.GetByCedula(ctx, cedula)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrDuplicate
		}
		amount := paymentAmount(in.Payment, plan)
		client = &entity.Client{
			Cedula:           cedula,
			FirstName:        firstName,
			LastName:         strings.TrimSpace(in.LastName),
			Phone:            strings.TrimSpace(in.Phone),
			Email:            strings.TrimSpace(in.Email),
			Address:          in.Address,
			BirthDate:        datePtr(in.BirthDate),
			PlanID:           plan.ID,
			PlanName:         plan.Name,
			RegistrationDate: registration,
			ExpiryDate:       membership.ComputeExpiry(registration, plan.DurationDays),
			PaymentMethod:    in.Payment.Method,
			AmountPaidUSD:    amount,
			ExchangeRate:     in.Payment.ExchangeRate,
			PaymentReference: in.Payment.Reference,
			Notes:            in.Notes,
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		client.SearchKey = clientSearchKey(client)
		if err := repos.Clients.Create(ctx, client); err != nil {
			return err
		}
		return repos.Payments.Create(ctx, newPayment(client, plan, registration, in.Payment, amount, today, userID))
	})
	if err != nil {
		return nil, err
	}
	return uc.toClientResponse(client, today), nil
}

// Update edición parcial. Si cambia el plan o la fecha de inscripción se recalcula el vencimiento.
func (uc *ClientUseCase) Update(ctx context.Context, id int64, in dto.UpdateClientRequest) (*dto.ClientResponse, error) {
	var client *entity.Client
	err := uc.txRunner.Run(ctx, func(repos repository.TxRepos) error {
		var err error
		client, err = repos.Clients.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if client == nil {
			return domain.ErrNotFound
		}
		if in.Cedula != nil {
			client.Cedula = strings.TrimSpace(*in.Cedula)
		}
		if in.FirstName != nil {
			client.FirstName = strings.TrimSpace(*in.FirstName)
		}
		if in.LastName != nil {
			client.LastName = strings.TrimSpace(*in.LastName)
		}
		if in.Phone != nil {
			client.Phone = strings.TrimSpace(*in.Phone)
		}
		if in.Email != nil {
			client.Email = strings.TrimSpace(*in.Email)
		}
		if in.Address != nil {
			client.Address = *in.Address
		}
		if in.BirthDate != nil {
			client.BirthDate = datePtr(in.BirthDate)
		}
		if in.Notes != nil {
			client.Notes = *in.Notes
		}
		if client.Cedula == "" || client.FirstName == "" {
			return domain.ErrInvalidInput
		}

		var plan *entity.MembershipPlan
		if in.PlanID != nil && *in.PlanID != client.PlanID {
			// un cambio de plan solo admite planes activos
			if plan, err = activePlan(ctx, repos.Plans, *in.PlanID); err != nil {
				return err
			}
		}
		if in.RegistrationDate != nil {
			client.RegistrationDate = membership.Date(*in.RegistrationDate)
			if plan == nil {
				if plan, err = repos.Plans.GetByID(ctx, client.PlanID); err != nil {
					return err
				}
				if plan == nil {
					return domain.ErrNotFound
				}
			}
		}
		if plan != nil {
			client.PlanID = plan.ID
			client.PlanName = plan.Name
			client.ExpiryDate = membership.ComputeExpiry(client.RegistrationDate, plan.DurationDays)
		}
		client.SearchKey = clientSearchKey(client)
		client.UpdatedAt = uc.now()
		return repos.Clients.Update(ctx, client)
	})
	if err != nil {
		return nil, err
	}
	return uc.toClientResponse(client, uc.today()), nil
}

// Delete elimina el cliente y su historial de pagos.
func (uc *ClientUseCase) Delete(ctx context.Context, id int64) error {
	client, err := uc.clientRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if client == nil {
		return domain.ErrNotFound
	}
	return uc.clientRepo.Delete(ctx, id)
}

// Get cliente con estado de membresía y días restantes.
func (uc *ClientUseCase) Get(ctx context.Context, id int64) (*dto.ClientResponse, error) {
	client, err := uc.clientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	return uc.toClientResponse(client, uc.today()), nil
}

// List búsqueda sin acentos ni mayúsculas, filtro por estado (como rango de vencimiento) y por plan.
func (uc *ClientUseCase) List(ctx context.Context, in dto.ClientListRequest) (*dto.ClientListResponse, error) {
	in.DefaultPage()
	today := uc.today()
	f := repository.ClientFilter{
		SearchKey: textutil.SearchKey(in.Query),
		PlanID:    in.PlanID,
		Limit:     in.Limit,
		Offset:    in.Offset,
	}
	if in.Status != "" {
		from, to, ok := membership.ExpiryRange(in.Status, today, uc.expiringDays)
		if !ok {
			return nil, domain.ErrInvalidInput
		}
		f.ExpiryFrom, f.ExpiryTo = from, to
	}
	list, total, err := uc.clientRepo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ClientResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *uc.toClientResponse(c, today))
	}
	return &dto.ClientListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}, nil
}

// ListExpiring clientes que vencen entre hoy y hoy + days (seguimiento de recepción).
func (uc *ClientUseCase) ListExpiring(ctx context.Context, days int) ([]dto.ClientResponse, error) {
	if days < 0 {
		return nil, domain.ErrInvalidInput
	}
	if days == 0 {
		days = uc.expiringDays
	}
	today := uc.today()
	to := today.AddDate(0, 0, days)
	list, _, err := uc.clientRepo.List(ctx, repository.ClientFilter{ExpiryFrom: &today, ExpiryTo: &to, Limit: 100})
	if err != nil {
		return nil, err
	}
	out := make([]dto.ClientResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *uc.toClientResponse(c, today))
	}
	return out, nil
}

// Renew renueva la membresía. El período nuevo empieza en max(hoy, vencimiento actual),
// así una renovación anticipada no pierde días. Actualiza cliente y registra el pago en una transacción.
func (uc *ClientUseCase) Renew(ctx context.Context, userID, id int64, in dto.RenewRequest) (*dto.ClientResponse, error) {
	if err := validatePayment(in.Payment); err != nil {
		return nil, err
	}
	today := uc.today()

	var client *entity.Client
	err := uc.txRunner.Run(ctx, func(repos repository.TxRepos) error {
		var err error
		client, err = repos.Clients.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if client == nil {
			return domain.ErrNotFound
		}
		planID := client.PlanID
		if in.PlanID != nil {
			planID = *in.PlanID
		}
		plan, err := activePlan(ctx, repos.Plans, planID)
		if err != nil {
			return err
		}
		start := membership.RenewalStart(client.ExpiryDate, today)
		amount := paymentAmount(in.Payment, plan)

		client.PlanID = plan.ID
		client.PlanName = plan.Name
		client.ExpiryDate = membership.ComputeExpiry(start, plan.DurationDays)
		client.PaymentMethod = in.Payment.Method
		client.AmountPaidUSD = amount
		client.ExchangeRate = in.Payment.ExchangeRate
		client.PaymentReference = in.Payment.Reference
		client.UpdatedAt = uc.now()
		if err := repos.Clients.Update(ctx, client); err != nil {
			return err
		}
		return repos.Payments.Create(ctx, newPayment(client, plan, start, in.Payment, amount, today, userID))
	})
	if err != nil {
		return nil, err
	}
	return uc.toClientResponse(client, today), nil
}

// ListPayments historial de pagos del cliente.
func (uc *ClientUseCase) ListPayments(ctx context.Context, clientID int64) ([]dto.ClientPaymentResponse, error) {
	client, err := uc.clientRepo.GetByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.paymentRepo.ListByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ClientPaymentResponse, 0, len(list))
	for _, p := range list {
		out = append(out, dto.ClientPaymentResponse{
			ID:           p.ID,
			ClientID:     p.ClientID,
			PlanID:       p.PlanID,
			PlanName:     p.PlanName,
			PeriodStart:  p.PeriodStart,
			PeriodEnd:    p.PeriodEnd,
			AmountUSD:    p.AmountUSD,
			ExchangeRate: p.ExchangeRate,
			AmountBs:     p.AmountBs,
			Method:       p.Method,
			Reference:    p.Reference,
			PaidAt:       p.PaidAt,
		})
	}
	return out, nil
}

func activePlan(ctx context.Context, plans repository.PlanRepository, id int64) (*entity.MembershipPlan, error) {
	plan, err := plans.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, domain.ErrNotFound
	}
	if !plan.Active {
		return nil, domain.ErrInvalidInput
	}
	return plan, nil
}

func validatePayment(p dto.PaymentRequest) error {
	if p.Method != "" && !entity.ValidPaymentMethod(p.Method) {
		return domain.ErrInvalidInput
	}
	if p.ExchangeRate.LessThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	if p.AmountUSD != nil && p.AmountUSD.LessThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	return nil
}

func paymentAmount(p dto.PaymentRequest, plan *entity.MembershipPlan) decimal.Decimal {
	if p.AmountUSD != nil {
		return *p.AmountUSD
	}
	return plan.PriceUSD
}

func newPayment(c *entity.Client, plan *entity.MembershipPlan, start time.Time, p dto.PaymentRequest, amount decimal.Decimal, paidAt time.Time, userID int64) *entity.ClientPayment {
	return &entity.ClientPayment{
		ClientID:     c.ID,
		PlanID:       plan.ID,
		PeriodStart:  start,
		PeriodEnd:    c.ExpiryDate,
		AmountUSD:    amount,
		ExchangeRate: p.ExchangeRate,
		AmountBs:     amount.Mul(p.ExchangeRate).Round(2),
		Method:       p.Method,
		Reference:    p.Reference,
		PaidAt:       paidAt,
		CreatedBy:    userID,
	}
}

func clientSearchKey(c *entity.Client) string {
	return textutil.SearchKey(c.FirstName, c.LastName, c.Cedula, c.Phone)
}

func datePtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := membership.Date(*t)
	return &d
}

func (uc *ClientUseCase) toClientResponse(c *entity.Client, today time.Time) *dto.ClientResponse {
	return &dto.ClientResponse{
		ID:               c.ID,
		Cedula:           c.Cedula,
		FirstName:        c.FirstName,
		LastName:         c.LastName,
		FullName:         c.FullName(),
		Phone:            c.Phone,
		Email:            c.Email,
		Address:          c.Address,
		BirthDate:        c.BirthDate,
		PlanID:           c.PlanID,
		PlanName:         c.PlanName,
		RegistrationDate: c.RegistrationDate,
		ExpiryDate:       c.ExpiryDate,
		Status:           membership.StatusAt(c.ExpiryDate, today, uc.expiringDays),
		DaysRemaining:    membership.DaysRemaining(c.ExpiryDate, today),
		PaymentMethod:    c.PaymentMethod,
		AmountPaidUSD:    c.AmountPaidUSD,
		ExchangeRate:     c.ExchangeRate,
		PaymentReference: c.PaymentReference,
		Notes:            c.Notes,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}
