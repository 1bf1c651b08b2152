package domain

// Action identifies one lifecycle operation for authorization purposes.
type Action string

const (
	ActionCreateRequest       Action = "request:create"
	ActionAssignProvider      Action = "request:assign"
	ActionUpdateBudget        Action = "request:update_budget"
	ActionUpdateRequestStatus Action = "request:update_status"
	ActionSoftDeleteRequest   Action = "request:soft_delete"
	ActionHardDeleteRequest   Action = "request:hard_delete"

	ActionCreatePitch       Action = "pitch:create"
	ActionUpdatePitchStatus Action = "pitch:update_status"
	ActionWithdrawPitch     Action = "pitch:withdraw"

	ActionCreatePayment       Action = "payment:create"
	ActionUpdatePaymentStatus Action = "payment:update_status"

	ActionCreateConnection  Action = "connection:create"
	ActionRespondConnection Action = "connection:respond"
	ActionDeleteConnection  Action = "connection:delete"

	ActionCreateReview    Action = "review:create"
	ActionCreatePortfolio Action = "portfolio:create"
	ActionDeletePortfolio Action = "portfolio:delete"
	ActionUploadDocument  Action = "document:upload"

	ActionModerateDocument      Action = "document:moderate"
	ActionOverrideAccountStatus Action = "user:override_status"
	ActionHardDeleteUser        Action = "user:hard_delete"
)

// Actor is the authenticated caller of a lifecycle action.
type Actor struct {
	ID   string
	Role Role
}

// Ownership carries the owner references of the entity being acted on.
// Fields irrelevant to a given action are left empty.
type Ownership struct {
	// ClientID is the owning client of the entity (request owner, paying
	// client, connection creator).
	ClientID string
	// ProviderID is the provider party of the entity (pitch submitter,
	// connection provider, payment recipient, portfolio owner).
	ProviderID string
	// AssignedProviderID is the provider currently assigned to the related
	// service request, if any.
	AssignedProviderID string
}

// CanAct is the single authorization predicate called at the start of every
// lifecycle action. It is a pure function of the actor and the entity's
// ownership fields; state-machine legality is checked separately and is
// never bypassed, not even for admins.
func CanAct(actor Actor, own Ownership, action Action) bool {
	switch action {
	// Role-gated creations.
	case ActionCreateRequest, ActionCreatePayment, ActionCreateConnection, ActionCreateReview:
		return actor.Role == RoleClient
	case ActionCreatePitch, ActionCreatePortfolio, ActionUploadDocument:
		return actor.Role == RoleProvider

	// Ownership-gated client actions.
	case ActionAssignProvider, ActionUpdateBudget, ActionUpdatePitchStatus,
		ActionUpdatePaymentStatus, ActionDeleteConnection:
		return actor.Role == RoleClient && actor.ID == own.ClientID

	// Soft delete: the owning client; admins take the hard-delete path.
	case ActionSoftDeleteRequest:
		return actor.Role == RoleClient && actor.ID == own.ClientID

	// Either party of the request, matched against role.
	case ActionUpdateRequestStatus:
		switch actor.Role {
		case RoleClient:
			return actor.ID == own.ClientID
		case RoleProvider:
			return own.AssignedProviderID != "" && actor.ID == own.AssignedProviderID
		}
		return false

	// Provider-party actions.
	case ActionWithdrawPitch, ActionRespondConnection, ActionDeletePortfolio:
		return actor.Role == RoleProvider && actor.ID == own.ProviderID

	// Admin moderation: bypasses ownership, never state legality.
	case ActionHardDeleteRequest, ActionModerateDocument,
		ActionOverrideAccountStatus, ActionHardDeleteUser:
		return actor.Role == RoleAdmin
	}
	return false
}
