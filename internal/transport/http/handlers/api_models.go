package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/brightshield/insurance-portal/internal/core/domain"
	"github.com/brightshield/insurance-portal/internal/core/port"
	"github.com/brightshield/insurance-portal/internal/transport/http/middleware"
)

// ErrorResponse represents a generic error payload with request ID for debugging.
type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// NewErrorResponse creates an error response with the request's correlation ID.
func NewErrorResponse(c *gin.Context, errorMsg string) ErrorResponse {
	return ErrorResponse{
		Error:     errorMsg,
		RequestID: middleware.GetRequestID(c),
	}
}

// MessageResponse represents a simple message payload.
type MessageResponse struct {
	Message string `json:"message"`
}

// AddressPayload mirrors a postal address in API payloads.
type AddressPayload struct {
	Street  string `json:"street,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	ZipCode string `json:"zip_code,omitempty"`
	Country string `json:"country,omitempty"`
}

// UserPayload describes the account view returned by the API. The password
// hash never leaves the usecase layer.
type UserPayload struct {
	ID          string         `json:"id"`
	Email       string         `json:"email"`
	FirstName   string         `json:"first_name"`
	LastName    string         `json:"last_name"`
	FullName    string         `json:"full_name"`
	Phone       string         `json:"phone,omitempty"`
	Role        domain.Role    `json:"role"`
	DateOfBirth *time.Time     `json:"date_of_birth,omitempty"`
	Address     AddressPayload `json:"address"`
	CreatedAt   time.Time      `json:"created_at"`
}

// RegisterRequest defines the account registration payload.
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Phone     string `json:"phone"`
}

// LoginRequest defines the payload for the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is returned on successful registration or login.
type AuthResponse struct {
	Token string      `json:"token"`
	User  UserPayload `json:"user"`
}

// ProfileUpdateRequest carries the editable profile fields.
type ProfileUpdateRequest struct {
	FirstName   string          `json:"first_name"`
	LastName    string          `json:"last_name"`
	Phone       string          `json:"phone"`
	DateOfBirth *time.Time      `json:"date_of_birth"`
	Address     *AddressPayload `json:"address"`
}

// PersonalInfoPayload mirrors the applicant snapshot captured with a quote.
type PersonalInfoPayload struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone,omitempty"`
	DateOfBirth string `json:"date_of_birth,omitempty"`
	ZipCode     string `json:"zip_code,omitempty"`
}

// VehicleInfoPayload mirrors the auto-line attributes.
type VehicleInfoPayload struct {
	Make    string `json:"make"`
	Model   string `json:"model"`
	Year    int    `json:"year"`
	Mileage int    `json:"mileage"`
	VIN     string `json:"vin,omitempty"`
}

// HomeInfoPayload mirrors the home-line attributes.
type HomeInfoPayload struct {
	Address          string `json:"address"`
	YearBuilt        int    `json:"year_built"`
	SquareFootage    int    `json:"square_footage"`
	ConstructionType string `json:"construction_type,omitempty"`
}

// CoveragePayload mirrors the coverage/deductible selection.
type CoveragePayload struct {
	CoverageType   string `json:"coverage_type"`
	CoverageAmount int64  `json:"coverage_amount"`
	Deductible     int64  `json:"deductible"`
}

// QuoteRequestPayload is the input to quote creation and premium rating.
type QuoteRequestPayload struct {
	Type            domain.InsuranceType `json:"type" binding:"required"`
	PersonalInfo    PersonalInfoPayload  `json:"personal_info"`
	VehicleInfo     *VehicleInfoPayload  `json:"vehicle_info,omitempty"`
	HomeInfo        *HomeInfoPayload     `json:"home_info,omitempty"`
	CoverageDetails CoveragePayload      `json:"coverage_details"`
}

// QuotePayload describes a quote in API responses.
type QuotePayload struct {
	ID              string               `json:"id"`
	UserID          string               `json:"user_id,omitempty"`
	Type            domain.InsuranceType `json:"type"`
	PersonalInfo    PersonalInfoPayload  `json:"personal_info"`
	VehicleInfo     *VehicleInfoPayload  `json:"vehicle_info,omitempty"`
	HomeInfo        *HomeInfoPayload     `json:"home_info,omitempty"`
	CoverageDetails CoveragePayload      `json:"coverage_details"`
	Premium         int64                `json:"premium"`
	Status          domain.QuoteStatus   `json:"status"`
	CreatedAt       time.Time            `json:"created_at"`
	ExpiresAt       time.Time            `json:"expires_at"`
	ValidUntil      time.Time            `json:"valid_until"`
}

// QuoteListResponse wraps multiple quotes.
type QuoteListResponse struct {
	Quotes []QuotePayload `json:"quotes"`
	Total  int            `json:"total"`
}

// RateResponse returns a computed premium without persisting anything.
type RateResponse struct {
	Premium int64 `json:"premium"`
}

// DocumentPayload describes policy document metadata.
type DocumentPayload struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	URL        string    `json:"url,omitempty"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// PolicyPayload describes a policy in API responses.
type PolicyPayload struct {
	ID              string               `json:"id"`
	UserID          string               `json:"user_id"`
	QuoteID         string               `json:"quote_id,omitempty"`
	PolicyNumber    string               `json:"policy_number"`
	Type            domain.InsuranceType `json:"type"`
	Status          domain.PolicyStatus  `json:"status"`
	Premium         int64                `json:"premium"`
	CoverageDetails CoveragePayload      `json:"coverage_details"`
	StartDate       time.Time            `json:"start_date"`
	EndDate         time.Time            `json:"end_date"`
	NextPaymentDate time.Time            `json:"next_payment_date"`
	Documents       []DocumentPayload    `json:"documents"`
}

// PolicyListResponse wraps multiple policies.
type PolicyListResponse struct {
	Policies []PolicyPayload `json:"policies"`
	Total    int             `json:"total"`
}

// PolicyIssueRequest binds a policy from an accepted quote.
type PolicyIssueRequest struct {
	QuoteID string `json:"quote_id" binding:"required"`
}

// AttachmentPayload describes supporting-file metadata on a claim.
type AttachmentPayload struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	URL        string    `json:"url,omitempty"`
	Size       int64     `json:"size,omitempty"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// ClaimMessagePayload describes one entry in a claim conversation.
type ClaimMessagePayload struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"sender_id"`
	SenderName string    `json:"sender_name"`
	Text       string    `json:"text"`
	Timestamp  time.Time `json:"timestamp"`
}

// ClaimPayload describes a claim in API responses.
type ClaimPayload struct {
	ID           string                `json:"id"`
	UserID       string                `json:"user_id"`
	PolicyID     string                `json:"policy_id"`
	ClaimNumber  string                `json:"claim_number"`
	Type         string                `json:"type"`
	Description  string                `json:"description"`
	Amount       int64                 `json:"amount"`
	Status       domain.ClaimStatus    `json:"status"`
	IncidentDate time.Time             `json:"incident_date"`
	ReportedAt   time.Time             `json:"reported_at"`
	Attachments  []AttachmentPayload   `json:"attachments"`
	Messages     []ClaimMessagePayload `json:"messages"`
}

// ClaimListResponse wraps multiple claims.
type ClaimListResponse struct {
	Claims []ClaimPayload `json:"claims"`
	Total  int            `json:"total"`
}

// ClaimFileRequest defines the claim filing payload.
type ClaimFileRequest struct {
	PolicyID     string              `json:"policy_id" binding:"required"`
	Type         string              `json:"type" binding:"required"`
	Description  string              `json:"description" binding:"required"`
	Amount       int64               `json:"amount" binding:"required"`
	IncidentDate time.Time           `json:"incident_date"`
	Attachments  []AttachmentPayload `json:"attachments"`
}

// ClaimStatusRequest moves a claim between states.
type ClaimStatusRequest struct {
	Status domain.ClaimStatus `json:"status" binding:"required"`
}

// ClaimMessageRequest appends a message to a claim thread.
type ClaimMessageRequest struct {
	Text string `json:"text" binding:"required"`
}

// PaymentPayload describes a payment in API responses.
type PaymentPayload struct {
	ID       string               `json:"id"`
	UserID   string               `json:"user_id"`
	PolicyID string               `json:"policy_id"`
	Amount   int64                `json:"amount"`
	Status   domain.PaymentStatus `json:"status"`
	Method   domain.PaymentMethod `json:"method,omitempty"`
	PaidAt   *time.Time           `json:"paid_at,omitempty"`
	DueDate  time.Time            `json:"due_date"`
}

// PaymentListResponse wraps multiple payments.
type PaymentListResponse struct {
	Payments []PaymentPayload `json:"payments"`
	Total    int              `json:"total"`
}

// PaymentRequest defines the payment submission payload.
type PaymentRequest struct {
	PolicyID string               `json:"policy_id" binding:"required"`
	Amount   int64                `json:"amount" binding:"required"`
	Method   domain.PaymentMethod `json:"method" binding:"required"`
	DueDate  time.Time            `json:"due_date"`
}

// PaymentStatsPayload aggregates payment totals for dashboard display.
type PaymentStatsPayload struct {
	TotalPaid int64 `json:"total_paid"`
	Pending   int64 `json:"pending"`
	Overdue   int64 `json:"overdue"`
}

// WizardStartRequest opens a wizard session, optionally pre-seeding a type.
type WizardStartRequest struct {
	Type domain.InsuranceType `json:"type"`
}

// WizardTypeRequest selects the product line for a session.
type WizardTypeRequest struct {
	Type domain.InsuranceType `json:"type" binding:"required"`
}

// WizardDetailsRequest submits the details-step form.
type WizardDetailsRequest struct {
	PersonalInfo    PersonalInfoPayload `json:"personal_info"`
	VehicleInfo     *VehicleInfoPayload `json:"vehicle_info,omitempty"`
	HomeInfo        *HomeInfoPayload    `json:"home_info,omitempty"`
	CoverageDetails CoveragePayload     `json:"coverage_details"`
}

// WizardSessionPayload describes a wizard session in API responses.
type WizardSessionPayload struct {
	ID              string               `json:"id"`
	State           port.WizardState     `json:"state"`
	Type            domain.InsuranceType `json:"type,omitempty"`
	PersonalInfo    PersonalInfoPayload  `json:"personal_info"`
	VehicleInfo     *VehicleInfoPayload  `json:"vehicle_info,omitempty"`
	HomeInfo        *HomeInfoPayload     `json:"home_info,omitempty"`
	CoverageDetails CoveragePayload      `json:"coverage_details"`
	Quote           *QuotePayload        `json:"quote,omitempty"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

// BlogPostPayload describes a marketing article.
type BlogPostPayload struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Excerpt     string    `json:"excerpt"`
	Body        string    `json:"body,omitempty"`
	Category    string    `json:"category"`
	Author      string    `json:"author"`
	PublishedAt time.Time `json:"published_at"`
}

// BlogPostListResponse wraps multiple posts.
type BlogPostListResponse struct {
	Posts []BlogPostPayload `json:"posts"`
	Total int               `json:"total"`
}

// FAQPayload describes a help-center entry.
type FAQPayload struct {
	ID       string `json:"id"`
	Category string `json:"category"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// FAQListResponse wraps multiple FAQ entries.
type FAQListResponse struct {
	FAQs  []FAQPayload `json:"faqs"`
	Total int          `json:"total"`
}

// ContactRequest defines the public contact-form payload.
type ContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject"`
	Message string `json:"message" binding:"required"`
}

// ContactResponse acknowledges a contact submission.
type ContactResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// HealthResponse describes the service health payload.
type HealthResponse struct {
	Status    string    `json:"status"`
	StartedAt time.Time `json:"started_at"`
}

// ReadyResponse describes readiness probe results with dependency checks.
type ReadyResponse struct {
	Status    string            `json:"status"`
	Checks    map[string]string `json:"checks,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}

func newUserPayload(user domain.User) UserPayload {
	return UserPayload{
		ID:          user.ID,
		Email:       user.Email,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		FullName:    user.FullName(),
		Phone:       user.Phone,
		Role:        user.Role,
		DateOfBirth: user.DateOfBirth,
		Address: AddressPayload{
			Street:  user.Address.Street,
			City:    user.Address.City,
			State:   user.Address.State,
			ZipCode: user.Address.ZipCode,
			Country: user.Address.Country,
		},
		CreatedAt: user.CreatedAt,
	}
}

func newPersonalInfoPayload(info domain.PersonalInfo) PersonalInfoPayload {
	return PersonalInfoPayload{
		FirstName:   info.FirstName,
		LastName:    info.LastName,
		Email:       info.Email,
		Phone:       info.Phone,
		DateOfBirth: info.DateOfBirth,
		ZipCode:     info.ZipCode,
	}
}

func newVehicleInfoPayload(info *domain.VehicleInfo) *VehicleInfoPayload {
	if info == nil {
		return nil
	}
	return &VehicleInfoPayload{
		Make:    info.Make,
		Model:   info.Model,
		Year:    info.Year,
		Mileage: info.Mileage,
		VIN:     info.VIN,
	}
}

func newHomeInfoPayload(info *domain.HomeInfo) *HomeInfoPayload {
	if info == nil {
		return nil
	}
	return &HomeInfoPayload{
		Address:          info.Address,
		YearBuilt:        info.YearBuilt,
		SquareFootage:    info.SquareFootage,
		ConstructionType: info.ConstructionType,
	}
}

func newCoveragePayload(coverage domain.CoverageDetails) CoveragePayload {
	return CoveragePayload{
		CoverageType:   coverage.CoverageType,
		CoverageAmount: coverage.CoverageAmount,
		Deductible:     coverage.Deductible,
	}
}

func newQuotePayload(quote domain.Quote) QuotePayload {
	return QuotePayload{
		ID:              quote.ID,
		UserID:          quote.UserID,
		Type:            quote.Type,
		PersonalInfo:    newPersonalInfoPayload(quote.PersonalInfo),
		VehicleInfo:     newVehicleInfoPayload(quote.VehicleInfo),
		HomeInfo:        newHomeInfoPayload(quote.HomeInfo),
		CoverageDetails: newCoveragePayload(quote.CoverageDetails),
		Premium:         quote.Premium,
		Status:          quote.Status,
		CreatedAt:       quote.CreatedAt,
		ExpiresAt:       quote.ExpiresAt,
		ValidUntil:      quote.ValidUntil,
	}
}

func newQuotePayloads(quotes []domain.Quote) []QuotePayload {
	out := make([]QuotePayload, 0, len(quotes))
	for _, q := range quotes {
		out = append(out, newQuotePayload(q))
	}
	return out
}

func newPolicyPayload(policy domain.Policy) PolicyPayload {
	documents := make([]DocumentPayload, 0, len(policy.Documents))
	for _, doc := range policy.Documents {
		documents = append(documents, DocumentPayload{
			ID:         doc.ID,
			Name:       doc.Name,
			URL:        doc.URL,
			UploadedAt: doc.UploadedAt,
		})
	}

	return PolicyPayload{
		ID:              policy.ID,
		UserID:          policy.UserID,
		QuoteID:         policy.QuoteID,
		PolicyNumber:    policy.PolicyNumber,
		Type:            policy.Type,
		Status:          policy.Status,
		Premium:         policy.Premium,
		CoverageDetails: newCoveragePayload(policy.CoverageDetails),
		StartDate:       policy.StartDate,
		EndDate:         policy.EndDate,
		NextPaymentDate: policy.NextPaymentDate,
		Documents:       documents,
	}
}

func newPolicyPayloads(policies []domain.Policy) []PolicyPayload {
	out := make([]PolicyPayload, 0, len(policies))
	for _, p := range policies {
		out = append(out, newPolicyPayload(p))
	}
	return out
}

func newClaimPayload(claim domain.Claim) ClaimPayload {
	attachments := make([]AttachmentPayload, 0, len(claim.Attachments))
	for _, att := range claim.Attachments {
		attachments = append(attachments, AttachmentPayload{
			ID:         att.ID,
			Name:       att.Name,
			URL:        att.URL,
			Size:       att.Size,
			UploadedAt: att.UploadedAt,
		})
	}

	messages := make([]ClaimMessagePayload, 0, len(claim.Messages))
	for _, msg := range claim.Messages {
		messages = append(messages, ClaimMessagePayload{
			ID:         msg.ID,
			SenderID:   msg.SenderID,
			SenderName: msg.SenderName,
			Text:       msg.Text,
			Timestamp:  msg.Timestamp,
		})
	}

	return ClaimPayload{
		ID:           claim.ID,
		UserID:       claim.UserID,
		PolicyID:     claim.PolicyID,
		ClaimNumber:  claim.ClaimNumber,
		Type:         claim.Type,
		Description:  claim.Description,
		Amount:       claim.Amount,
		Status:       claim.Status,
		IncidentDate: claim.IncidentDate,
		ReportedAt:   claim.ReportedAt,
		Attachments:  attachments,
		Messages:     messages,
	}
}

func newClaimPayloads(claims []domain.Claim) []ClaimPayload {
	out := make([]ClaimPayload, 0, len(claims))
	for _, c := range claims {
		out = append(out, newClaimPayload(c))
	}
	return out
}

func newPaymentPayload(payment domain.Payment) PaymentPayload {
	return PaymentPayload{
		ID:       payment.ID,
		UserID:   payment.UserID,
		PolicyID: payment.PolicyID,
		Amount:   payment.Amount,
		Status:   payment.Status,
		Method:   payment.Method,
		PaidAt:   payment.PaidAt,
		DueDate:  payment.DueDate,
	}
}

func newPaymentPayloads(payments []domain.Payment) []PaymentPayload {
	out := make([]PaymentPayload, 0, len(payments))
	for _, p := range payments {
		out = append(out, newPaymentPayload(p))
	}
	return out
}

func newWizardSessionPayload(session port.WizardSession) WizardSessionPayload {
	payload := WizardSessionPayload{
		ID:              session.ID,
		State:           session.State,
		Type:            session.Type,
		PersonalInfo:    newPersonalInfoPayload(session.PersonalInfo),
		VehicleInfo:     newVehicleInfoPayload(session.VehicleInfo),
		HomeInfo:        newHomeInfoPayload(session.HomeInfo),
		CoverageDetails: newCoveragePayload(session.CoverageDetails),
		CreatedAt:       session.CreatedAt,
		UpdatedAt:       session.UpdatedAt,
	}

	if session.Quote != nil {
		quote := newQuotePayload(*session.Quote)
		payload.Quote = &quote
	}

	return payload
}

func newBlogPostPayload(post domain.BlogPost, includeBody bool) BlogPostPayload {
	payload := BlogPostPayload{
		ID:          post.ID,
		Title:       post.Title,
		Excerpt:     post.Excerpt,
		Category:    post.Category,
		Author:      post.Author,
		PublishedAt: post.PublishedAt,
	}
	if includeBody {
		payload.Body = post.Body
	}
	return payload
}

func newFAQPayload(faq domain.FAQ) FAQPayload {
	return FAQPayload{
		ID:       faq.ID,
		Category: faq.Category,
		Question: faq.Question,
		Answer:   faq.Answer,
	}
}

func toQuoteRequest(req QuoteRequestPayload) domain.QuoteRequest {
	out := domain.QuoteRequest{
		Type: req.Type,
		PersonalInfo: domain.PersonalInfo{
			FirstName:   req.PersonalInfo.FirstName,
			LastName:    req.PersonalInfo.LastName,
			Email:       req.PersonalInfo.Email,
			Phone:       req.PersonalInfo.Phone,
			DateOfBirth: req.PersonalInfo.DateOfBirth,
			ZipCode:     req.PersonalInfo.ZipCode,
		},
		CoverageDetails: domain.CoverageDetails{
			CoverageType:   req.CoverageDetails.CoverageType,
			CoverageAmount: req.CoverageDetails.CoverageAmount,
			Deductible:     req.CoverageDetails.Deductible,
		},
	}

	if req.VehicleInfo != nil {
		out.VehicleInfo = &domain.VehicleInfo{
			Make:    req.VehicleInfo.Make,
			Model:   req.VehicleInfo.Model,
			Year:    req.VehicleInfo.Year,
			Mileage: req.VehicleInfo.Mileage,
			VIN:     req.VehicleInfo.VIN,
		}
	}
	if req.HomeInfo != nil {
		out.HomeInfo = &domain.HomeInfo{
			Address:          req.HomeInfo.Address,
			YearBuilt:        req.HomeInfo.YearBuilt,
			SquareFootage:    req.HomeInfo.SquareFootage,
			ConstructionType: req.HomeInfo.ConstructionType,
		}
	}

	return out
}
