package enrollmentservice

import (
	"log/slog"
	"time"

	httpadapter "coursebay/contexts/commerce/enrollment-service/adapters/http"
	"coursebay/contexts/commerce/enrollment-service/application/commands"
	"coursebay/contexts/commerce/enrollment-service/application/queries"
	"coursebay/contexts/commerce/enrollment-service/application/workers"
	"coursebay/contexts/commerce/enrollment-service/ports"
)

// Module is the enrollment-service composition root exposed to runtime wiring.
type Module struct {
	Handler     httpadapter.Handler
	OutboxRelay workers.OutboxRelay
	WelcomeMail workers.WelcomeMailer
}

// Dependencies captures all runtime ports/config required by NewModule.
type Dependencies struct {
	Provider    ports.PaymentProvider
	Enrollments ports.EnrollmentRepository
	Outbox      ports.OutboxRepository
	Courses     ports.CourseDirectory
	Publisher   ports.EventPublisher
	Subscriber  ports.EventSubscriber
	Dedup       ports.EventDedupStore
	Mailer      ports.Mailer
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Currency    string
	DedupTTL    time.Duration
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	startCheckout := commands.StartCheckoutUseCase{
		Provider:    deps.Provider,
		Enrollments: deps.Enrollments,
		Courses:     deps.Courses,
		Currency:    deps.Currency,
		Logger:      deps.Logger,
	}
	verifyCheckout := commands.VerifyAndActivateUseCase{
		Provider:    deps.Provider,
		Enrollments: deps.Enrollments,
		Courses:     deps.Courses,
		Clock:       deps.Clock,
		IDGenerator: deps.IDGenerator,
		Logger:      deps.Logger,
	}
	listEnrollments := queries.ListEnrollmentsUseCase{
		Enrollments: deps.Enrollments,
		Logger:      deps.Logger,
	}

	return Module{
		Handler: httpadapter.Handler{
			StartCheckout:   startCheckout,
			VerifyCheckout:  verifyCheckout,
			ListEnrollments: listEnrollments,
			Logger:          deps.Logger,
		},
		OutboxRelay: workers.OutboxRelay{
			Outbox:    deps.Outbox,
			Publisher: deps.Publisher,
			Clock:     deps.Clock,
			Logger:    deps.Logger,
		},
		WelcomeMail: workers.WelcomeMailer{
			Subscriber: deps.Subscriber,
			Mailer:     deps.Mailer,
			Dedup:      deps.Dedup,
			Clock:      deps.Clock,
			DedupTTL:   deps.DedupTTL,
			Logger:     deps.Logger,
		},
	}
}
