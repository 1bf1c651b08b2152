package ports

// NotificationKind labels an emission for metrics and logging.
type NotificationKind string

const (
	KindRequestAssigned     NotificationKind = "request_assigned"
	KindBudgetUpdated       NotificationKind = "budget_updated"
	KindPitchReceived       NotificationKind = "pitch_received"
	KindPitchStatus         NotificationKind = "pitch_status"
	KindPitchWithdrawn      NotificationKind = "pitch_withdrawn"
	KindPaymentReceived     NotificationKind = "payment_received"
	KindPaymentConfirmed    NotificationKind = "payment_confirmed"
	KindConnectionRequested NotificationKind = "connection_requested"
	KindConnectionAccepted  NotificationKind = "connection_accepted"
	KindConnectionRejected  NotificationKind = "connection_rejected"
	KindAccountWelcome      NotificationKind = "account_welcome"
	KindProfileUpdated      NotificationKind = "profile_updated"
	KindDocumentModerated   NotificationKind = "document_moderated"
)

// MailMessage is an outbound email accompanying an emission.
type MailMessage struct {
	To      string
	Subject string
	Body    string
}

// NotificationEvent is one "deliver message M to user U" emission.
// InApp controls whether an inbox entry is written; Mail, when non-nil,
// additionally requests an outbound email.
type NotificationEvent struct {
	UserID  string
	Kind    NotificationKind
	Message string
	InApp   bool
	Mail    *MailMessage
}

// Notifier accepts emissions from the lifecycle services. Implementations
// must be called only after the triggering entity write has committed, and
// must never propagate delivery failures back to the caller: delivery is
// at-most-once, best-effort.
type Notifier interface {
	Notify(event NotificationEvent)
}

// Mailer sends a single outbound email.
type Mailer interface {
	Send(m MailMessage) error
}
