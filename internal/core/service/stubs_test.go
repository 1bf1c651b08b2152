package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/eventura/marketplace-system/internal/core/domain"
	"github.com/eventura/marketplace-system/internal/core/ports"
)

// In-memory stub repositories shared by the service tests.

type recordingNotifier struct {
	mu     sync.Mutex
	events []ports.NotificationEvent
}

func (n *recordingNotifier) Notify(event ports.NotificationEvent) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
}

func (n *recordingNotifier) byKind(kind ports.NotificationKind) []ports.NotificationEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []ports.NotificationEvent
	for _, e := range n.events {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

type stubUserRepo struct {
	seq   int
	users map[string]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	copy := *u
	if copy.ID == "" {
		r.seq++
		copy.ID = fmt.Sprintf("user_%d", r.seq)
	}
	r.users[copy.ID] = &copy
	out := copy
	return &out, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	copy := *u
	return &copy, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copy := *u
			return &copy, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByMobile(_ context.Context, mobile string) (*domain.User, error) {
	for _, u := range r.users {
		if u.MobileNumber == mobile {
			copy := *u
			return &copy, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Update(_ context.Context, u *domain.User) (*domain.User, error) {
	if _, ok := r.users[u.ID]; !ok {
		return nil, domain.ErrUserNotFound
	}
	copy := *u
	r.users[u.ID] = &copy
	out := copy
	return &out, nil
}

func (r *stubUserRepo) UpdateAccountStatus(_ context.Context, id string, status domain.AccountStatus) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.AccountStatus = status
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *stubUserRepo) List(_ context.Context, page ports.PageInput) ([]*domain.User, int64, error) {
	var out []*domain.User
	for _, u := range r.users {
		copy := *u
		out = append(out, &copy)
	}
	return out, int64(len(out)), nil
}

// seed inserts a user with a fixed ID and ACTIVE status.
func (r *stubUserRepo) seed(id string, role domain.Role) *domain.User {
	u := &domain.User{
		ID:            id,
		FirstName:     "Test",
		LastName:      id,
		Email:         id + "@example.com",
		Role:          role,
		AccountStatus: domain.AccountActive,
	}
	r.users[id] = u
	return u
}

type stubRequestRepo struct {
	seq      int
	requests map[string]*domain.ServiceRequest
	// deleted records hard deletes for cascade assertions.
	deleted []string
}

func newStubRequestRepo() *stubRequestRepo {
	return &stubRequestRepo{requests: make(map[string]*domain.ServiceRequest)}
}

func (r *stubRequestRepo) Create(_ context.Context, req *domain.ServiceRequest) (*domain.ServiceRequest, error) {
	copy := *req
	if copy.ID == "" {
		r.seq++
		copy.ID = fmt.Sprintf("req_%d", r.seq)
	}
	r.requests[copy.ID] = &copy
	out := copy
	return &out, nil
}

func (r *stubRequestRepo) FindByID(_ context.Context, id string) (*domain.ServiceRequest, error) {
	req, ok := r.requests[id]
	if !ok {
		return nil, domain.ErrRequestNotFound
	}
	copy := *req
	return &copy, nil
}

func (r *stubRequestRepo) List(_ context.Context, f ports.RequestFilter) ([]*domain.ServiceRequest, int64, error) {
	var out []*domain.ServiceRequest
	for _, req := range r.requests {
		if f.ClientID != "" && req.ClientID != f.ClientID {
			continue
		}
		if f.ServiceType != "" && req.ServiceType != f.ServiceType {
			continue
		}
		if f.Status != "" && req.Status != f.Status {
			continue
		}
		copy := *req
		out = append(out, &copy)
	}
	return out, int64(len(out)), nil
}

func (r *stubRequestRepo) Assign(_ context.Context, requestID, providerID string) error {
	req, ok := r.requests[requestID]
	if !ok {
		return domain.ErrRequestNotFound
	}
	if req.Status != domain.RequestOpen {
		return domain.ErrInvalidTransition
	}
	req.AssignedProviderID = providerID
	req.Status = domain.RequestAssigned
	return nil
}

func (r *stubRequestRepo) UpdateBudget(_ context.Context, requestID string, budget float64) error {
	req, ok := r.requests[requestID]
	if !ok {
		return domain.ErrRequestNotFound
	}
	req.Budget = budget
	return nil
}

func (r *stubRequestRepo) UpdateStatus(_ context.Context, requestID string, from, to domain.RequestStatus) error {
	req, ok := r.requests[requestID]
	if !ok {
		return domain.ErrRequestNotFound
	}
	if req.Status != from {
		return domain.ErrInvalidTransition
	}
	req.Status = to
	return nil
}

func (r *stubRequestRepo) Delete(_ context.Context, requestID string) error {
	if _, ok := r.requests[requestID]; !ok {
		return domain.ErrRequestNotFound
	}
	delete(r.requests, requestID)
	r.deleted = append(r.deleted, requestID)
	return nil
}

func (r *stubRequestRepo) CountLiveByClient(_ context.Context, clientID string) (int64, error) {
	var n int64
	for _, req := range r.requests {
		if req.ClientID == clientID && !req.Status.Terminal() {
			n++
		}
	}
	return n, nil
}

func (r *stubRequestRepo) CountLiveByProvider(_ context.Context, providerID string) (int64, error) {
	var n int64
	for _, req := range r.requests {
		if req.AssignedProviderID == providerID && !req.Status.Terminal() {
			n++
		}
	}
	return n, nil
}

func (r *stubRequestRepo) seed(req *domain.ServiceRequest) *domain.ServiceRequest {
	if req.ID == "" {
		r.seq++
		req.ID = fmt.Sprintf("req_%d", r.seq)
	}
	copy := *req
	r.requests[req.ID] = &copy
	return req
}

type stubPitchRepo struct {
	seq     int
	pitches map[string]*domain.Pitch
}

func newStubPitchRepo() *stubPitchRepo {
	return &stubPitchRepo{pitches: make(map[string]*domain.Pitch)}
}

func (r *stubPitchRepo) Create(_ context.Context, p *domain.Pitch) (*domain.Pitch, error) {
	copy := *p
	if copy.ID == "" {
		r.seq++
		copy.ID = fmt.Sprintf("pitch_%d", r.seq)
	}
	r.pitches[copy.ID] = &copy
	out := copy
	return &out, nil
}

func (r *stubPitchRepo) FindByID(_ context.Context, id string) (*domain.Pitch, error) {
	p, ok := r.pitches[id]
	if !ok {
		return nil, domain.ErrPitchNotFound
	}
	copy := *p
	return &copy, nil
}

func (r *stubPitchRepo) ListByProvider(_ context.Context, providerID string, page ports.PageInput) ([]*domain.Pitch, int64, error) {
	var out []*domain.Pitch
	for _, p := range r.pitches {
		if p.ProviderID == providerID {
			copy := *p
			out = append(out, &copy)
		}
	}
	return out, int64(len(out)), nil
}

func (r *stubPitchRepo) ListByRequest(_ context.Context, requestID string, page ports.PageInput) ([]*domain.Pitch, int64, error) {
	var out []*domain.Pitch
	for _, p := range r.pitches {
		if p.RequestID == requestID {
			copy := *p
			out = append(out, &copy)
		}
	}
	return out, int64(len(out)), nil
}

func (r *stubPitchRepo) UpdateStatus(_ context.Context, id string, from, to domain.PitchStatus) error {
	p, ok := r.pitches[id]
	if !ok {
		return domain.ErrPitchNotFound
	}
	if p.Status != from {
		return domain.ErrInvalidTransition
	}
	p.Status = to
	return nil
}

func (r *stubPitchRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.pitches[id]; !ok {
		return domain.ErrPitchNotFound
	}
	delete(r.pitches, id)
	return nil
}

func (r *stubPitchRepo) CountPendingByProvider(_ context.Context, providerID string) (int64, error) {
	var n int64
	for _, p := range r.pitches {
		if p.ProviderID == providerID && p.Status == domain.PitchPending {
			n++
		}
	}
	return n, nil
}

type stubPaymentRepo struct {
	seq      int
	payments map[string]*domain.Payment
}

func newStubPaymentRepo() *stubPaymentRepo {
	return &stubPaymentRepo{payments: make(map[string]*domain.Payment)}
}

func (r *stubPaymentRepo) Create(_ context.Context, p *domain.Payment) (*domain.Payment, error) {
	copy := *p
	if copy.ID == "" {
		r.seq++
		copy.ID = fmt.Sprintf("pay_%d", r.seq)
	}
	r.payments[copy.ID] = &copy
	out := copy
	return &out, nil
}

func (r *stubPaymentRepo) FindByID(_ context.Context, id string) (*domain.Payment, error) {
	p, ok := r.payments[id]
	if !ok {
		return nil, domain.ErrPaymentNotFound
	}
	copy := *p
	return &copy, nil
}

func (r *stubPaymentRepo) ListByClient(_ context.Context, clientID string, page ports.PageInput) ([]*domain.Payment, int64, error) {
	var out []*domain.Payment
	for _, p := range r.payments {
		if p.ClientID == clientID {
			copy := *p
			out = append(out, &copy)
		}
	}
	return out, int64(len(out)), nil
}

func (r *stubPaymentRepo) ListByProvider(_ context.Context, providerID string, page ports.PageInput) ([]*domain.Payment, int64, error) {
	var out []*domain.Payment
	for _, p := range r.payments {
		if p.ProviderID == providerID {
			copy := *p
			out = append(out, &copy)
		}
	}
	return out, int64(len(out)), nil
}

func (r *stubPaymentRepo) FindCurrentByRequest(_ context.Context, requestID string) (*domain.Payment, error) {
	var latest *domain.Payment
	for _, p := range r.payments {
		if p.RequestID != requestID {
			continue
		}
		if latest == nil || p.CreatedAt.After(latest.CreatedAt) {
			latest = p
		}
	}
	if latest == nil {
		return nil, domain.ErrPaymentNotFound
	}
	copy := *latest
	return &copy, nil
}

func (r *stubPaymentRepo) UpdateStatus(_ context.Context, id string, from, to domain.PaymentStatus) error {
	p, ok := r.payments[id]
	if !ok {
		return domain.ErrPaymentNotFound
	}
	if p.Status != from {
		return domain.ErrInvalidTransition
	}
	p.Status = to
	return nil
}

func (r *stubPaymentRepo) CountPendingByUser(_ context.Context, userID string) (int64, error) {
	var n int64
	for _, p := range r.payments {
		if (p.ClientID == userID || p.ProviderID == userID) && p.Status == domain.PaymentPending {
			n++
		}
	}
	return n, nil
}

type stubConnectionRepo struct {
	seq         int
	connections map[string]*domain.DirectConnection
}

func newStubConnectionRepo() *stubConnectionRepo {
	return &stubConnectionRepo{connections: make(map[string]*domain.DirectConnection)}
}

func (r *stubConnectionRepo) Create(_ context.Context, c *domain.DirectConnection) (*domain.DirectConnection, error) {
	copy := *c
	if copy.ID == "" {
		r.seq++
		copy.ID = fmt.Sprintf("conn_%d", r.seq)
	}
	r.connections[copy.ID] = &copy
	out := copy
	return &out, nil
}

func (r *stubConnectionRepo) FindByID(_ context.Context, id string) (*domain.DirectConnection, error) {
	c, ok := r.connections[id]
	if !ok {
		return nil, domain.ErrConnectionNotFound
	}
	copy := *c
	return &copy, nil
}

func (r *stubConnectionRepo) ListByClient(_ context.Context, clientID string, page ports.PageInput) ([]*domain.DirectConnection, int64, error) {
	var out []*domain.DirectConnection
	for _, c := range r.connections {
		if c.ClientID == clientID {
			copy := *c
			out = append(out, &copy)
		}
	}
	return out, int64(len(out)), nil
}

func (r *stubConnectionRepo) ListByProvider(_ context.Context, providerID string, page ports.PageInput) ([]*domain.DirectConnection, int64, error) {
	var out []*domain.DirectConnection
	for _, c := range r.connections {
		if c.ProviderID == providerID {
			copy := *c
			out = append(out, &copy)
		}
	}
	return out, int64(len(out)), nil
}

func (r *stubConnectionRepo) UpdateStatus(_ context.Context, id string, from, to domain.ConnectionStatus) error {
	c, ok := r.connections[id]
	if !ok {
		return domain.ErrConnectionNotFound
	}
	if c.Status != from {
		return domain.ErrInvalidTransition
	}
	c.Status = to
	return nil
}

func (r *stubConnectionRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.connections[id]; !ok {
		return domain.ErrConnectionNotFound
	}
	delete(r.connections, id)
	return nil
}

type stubNotificationRepo struct {
	seq           int
	notifications map[string]*domain.Notification
}

func newStubNotificationRepo() *stubNotificationRepo {
	return &stubNotificationRepo{notifications: make(map[string]*domain.Notification)}
}

func (r *stubNotificationRepo) Create(_ context.Context, n *domain.Notification) (*domain.Notification, error) {
	copy := *n
	if copy.ID == "" {
		r.seq++
		copy.ID = fmt.Sprintf("notif_%d", r.seq)
	}
	r.notifications[copy.ID] = &copy
	out := copy
	return &out, nil
}

func (r *stubNotificationRepo) FindByID(_ context.Context, id string) (*domain.Notification, error) {
	n, ok := r.notifications[id]
	if !ok {
		return nil, domain.ErrNotificationNotFound
	}
	copy := *n
	return &copy, nil
}

func (r *stubNotificationRepo) ListByUser(_ context.Context, userID string, isRead *bool, page ports.PageInput) ([]*domain.Notification, int64, error) {
	var out []*domain.Notification
	for _, n := range r.notifications {
		if n.UserID != userID {
			continue
		}
		if isRead != nil && n.IsRead != *isRead {
			continue
		}
		copy := *n
		out = append(out, &copy)
	}
	return out, int64(len(out)), nil
}

func (r *stubNotificationRepo) MarkRead(_ context.Context, id string) error {
	n, ok := r.notifications[id]
	if !ok {
		return domain.ErrNotificationNotFound
	}
	n.IsRead = true
	return nil
}

func (r *stubNotificationRepo) CountUnread(_ context.Context, userID string) (int64, error) {
	var n int64
	for _, notif := range r.notifications {
		if notif.UserID == userID && !notif.IsRead {
			n++
		}
	}
	return n, nil
}

type stubCounterCache struct {
	counts      map[string]int64
	invalidated int
}

func newStubCounterCache() *stubCounterCache {
	return &stubCounterCache{counts: make(map[string]int64)}
}

func (c *stubCounterCache) Get(_ context.Context, userID string) (int64, bool, error) {
	n, ok := c.counts[userID]
	return n, ok, nil
}

func (c *stubCounterCache) Set(_ context.Context, userID string, count int64) error {
	c.counts[userID] = count
	return nil
}

func (c *stubCounterCache) Invalidate(_ context.Context, userID string) error {
	delete(c.counts, userID)
	c.invalidated++
	return nil
}

type stubReviewRepo struct {
	seq     int
	reviews map[string]*domain.Review
}

func newStubReviewRepo() *stubReviewRepo {
	return &stubReviewRepo{reviews: make(map[string]*domain.Review)}
}

func (r *stubReviewRepo) Create(_ context.Context, rv *domain.Review) (*domain.Review, error) {
	copy := *rv
	if copy.ID == "" {
		r.seq++
		copy.ID = fmt.Sprintf("review_%d", r.seq)
	}
	r.reviews[copy.ID] = &copy
	out := copy
	return &out, nil
}

func (r *stubReviewRepo) FindByID(_ context.Context, id string) (*domain.Review, error) {
	rv, ok := r.reviews[id]
	if !ok {
		return nil, domain.ErrReviewNotFound
	}
	copy := *rv
	return &copy, nil
}

func (r *stubReviewRepo) ListByProvider(_ context.Context, providerID string, page ports.PageInput) ([]*domain.Review, int64, error) {
	var out []*domain.Review
	for _, rv := range r.reviews {
		if rv.ProviderID == providerID {
			copy := *rv
			out = append(out, &copy)
		}
	}
	return out, int64(len(out)), nil
}

type stubProviderRepo struct {
	seq        int
	profiles   map[string]*domain.ServiceProvider
	portfolios map[string]*domain.Portfolio
	documents  map[string]*domain.VerificationDocument
}

func newStubProviderRepo() *stubProviderRepo {
	return &stubProviderRepo{
		profiles:   make(map[string]*domain.ServiceProvider),
		portfolios: make(map[string]*domain.Portfolio),
		documents:  make(map[string]*domain.VerificationDocument),
	}
}

func (r *stubProviderRepo) CreateProfile(_ context.Context, p *domain.ServiceProvider) (*domain.ServiceProvider, error) {
	copy := *p
	if copy.ID == "" {
		r.seq++
		copy.ID = fmt.Sprintf("prov_%d", r.seq)
	}
	r.profiles[copy.ID] = &copy
	out := copy
	return &out, nil
}

func (r *stubProviderRepo) UpdateProfile(_ context.Context, p *domain.ServiceProvider) (*domain.ServiceProvider, error) {
	if _, ok := r.profiles[p.ID]; !ok {
		return nil, domain.ErrProviderNotFound
	}
	copy := *p
	r.profiles[p.ID] = &copy
	out := copy
	return &out, nil
}

func (r *stubProviderRepo) FindProfileByID(_ context.Context, id string) (*domain.ServiceProvider, error) {
	p, ok := r.profiles[id]
	if !ok {
		return nil, domain.ErrProviderNotFound
	}
	copy := *p
	return &copy, nil
}

func (r *stubProviderRepo) FindProfileByUserID(_ context.Context, userID string) (*domain.ServiceProvider, error) {
	for _, p := range r.profiles {
		if p.UserID == userID {
			copy := *p
			return &copy, nil
		}
	}
	return nil, domain.ErrProviderNotFound
}

func (r *stubProviderRepo) ListProfiles(_ context.Context, page ports.PageInput) ([]*domain.ServiceProvider, int64, error) {
	var out []*domain.ServiceProvider
	for _, p := range r.profiles {
		copy := *p
		out = append(out, &copy)
	}
	return out, int64(len(out)), nil
}

func (r *stubProviderRepo) SetVerified(_ context.Context, providerID string, verified bool) error {
	p, ok := r.profiles[providerID]
	if !ok {
		return domain.ErrProviderNotFound
	}
	p.IsVerified = verified
	return nil
}

func (r *stubProviderRepo) CreatePortfolio(_ context.Context, p *domain.Portfolio) (*domain.Portfolio, error) {
	copy := *p
	if copy.ID == "" {
		r.seq++
		copy.ID = fmt.Sprintf("folio_%d", r.seq)
	}
	r.portfolios[copy.ID] = &copy
	out := copy
	return &out, nil
}

func (r *stubProviderRepo) FindPortfolioByID(_ context.Context, id string) (*domain.Portfolio, error) {
	p, ok := r.portfolios[id]
	if !ok {
		return nil, domain.ErrPortfolioNotFound
	}
	copy := *p
	return &copy, nil
}

func (r *stubProviderRepo) ListPortfolios(_ context.Context, providerID string, page ports.PageInput) ([]*domain.Portfolio, int64, error) {
	var out []*domain.Portfolio
	for _, p := range r.portfolios {
		if p.ProviderID == providerID {
			copy := *p
			out = append(out, &copy)
		}
	}
	return out, int64(len(out)), nil
}

func (r *stubProviderRepo) DeletePortfolio(_ context.Context, id string) error {
	if _, ok := r.portfolios[id]; !ok {
		return domain.ErrPortfolioNotFound
	}
	delete(r.portfolios, id)
	return nil
}

func (r *stubProviderRepo) CreateDocument(_ context.Context, d *domain.VerificationDocument) (*domain.VerificationDocument, error) {
	copy := *d
	if copy.ID == "" {
		r.seq++
		copy.ID = fmt.Sprintf("doc_%d", r.seq)
	}
	r.documents[copy.ID] = &copy
	out := copy
	return &out, nil
}

func (r *stubProviderRepo) FindDocumentByID(_ context.Context, id string) (*domain.VerificationDocument, error) {
	d, ok := r.documents[id]
	if !ok {
		return nil, domain.ErrDocumentNotFound
	}
	copy := *d
	return &copy, nil
}

func (r *stubProviderRepo) ListDocumentsByProvider(_ context.Context, providerID string, page ports.PageInput) ([]*domain.VerificationDocument, int64, error) {
	var out []*domain.VerificationDocument
	for _, d := range r.documents {
		if d.ProviderID == providerID {
			copy := *d
			out = append(out, &copy)
		}
	}
	return out, int64(len(out)), nil
}

func (r *stubProviderRepo) UpdateDocumentStatus(_ context.Context, id string, status domain.DocumentStatus) error {
	d, ok := r.documents[id]
	if !ok {
		return domain.ErrDocumentNotFound
	}
	d.Status = status
	return nil
}
