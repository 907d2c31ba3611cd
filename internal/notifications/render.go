package notifications

import (
	"regexp"

	"github.com/creatorlane/creatorlane/internal/models"
)

// Kind is the closed set of display templates. Server-sent types are an open
// string vocabulary; KindOf folds them onto this set with KindUnknown as the
// schema-drift escape hatch.
type Kind string

const (
	KindPayment        Kind = "payment"
	KindPaymentPending Kind = "payment_pending"
	KindPaymentFailed  Kind = "payment_failed"
	KindMessage        Kind = "message"
	KindApplication    Kind = "application"
	KindOffer          Kind = "offer"
	KindReview         Kind = "review"
	KindNewApplication Kind = "new_application"
	KindContentFlag    Kind = "content_flag"
	KindAnnouncement   Kind = "announcement"
	KindUnknown        Kind = "unknown"
)

// KindOf maps a server-sent notification type onto a display kind.
func KindOf(notificationType string) Kind {
	switch notificationType {
	case "payment_received", "payment_approved", "payment":
		return KindPayment
	case "payment_pending":
		return KindPaymentPending
	case "payment_failed_insufficient_funds":
		return KindPaymentFailed
	case "new_message", "message":
		return KindMessage
	case "application_status_change", "application":
		return KindApplication
	case "offer_approved", "offer_rejected", "offer":
		return KindOffer
	case "review_received", "review":
		return KindReview
	case "new_application":
		return KindNewApplication
	case "content_flagged":
		return KindContentFlag
	case "system_announcement", "announcement":
		return KindAnnouncement
	default:
		return KindUnknown
	}
}

// Record is the notification shape the renderer consumes.
type Record struct {
	Type    string
	Title   string
	Message string
	LinkURL string
	Meta    Metadata
}

// View is the resolved display template for one notification. Exactly one of
// the per-kind sections is populated, matching Kind.
type View struct {
	Kind    Kind   `json:"kind"`
	Title   string `json:"title"`
	Message string `json:"message"`

	// RawHTML marks Message as trusted HTML passed through unsanitised.
	// Upstream producers are responsible for sanitisation.
	RawHTML bool `json:"raw_html,omitempty"`

	LinkURL string `json:"link_url,omitempty"`

	Payment        *PaymentView        `json:"payment,omitempty"`
	Application    *ApplicationView    `json:"application,omitempty"`
	Offer          *OfferView          `json:"offer,omitempty"`
	NewApplication *NewApplicationView `json:"new_application,omitempty"`
	Flag           *FlagView           `json:"flag,omitempty"`
}

// PaymentView carries the payment-family card fields.
type PaymentView struct {
	Amount        string            `json:"amount,omitempty"`
	TransactionID string            `json:"transaction_id,omitempty"`
	OfferTitle    string            `json:"offer_title,omitempty"`
	PaymentID     string            `json:"payment_id,omitempty"`
	Breakdown     *PaymentBreakdown `json:"breakdown,omitempty"`
}

// PaymentBreakdown is shown only when every component amount is present.
type PaymentBreakdown struct {
	Gross         string `json:"gross"`
	PlatformFee   string `json:"platform_fee"`
	ProcessingFee string `json:"processing_fee"`
}

// ApplicationView carries application status cards.
type ApplicationView struct {
	ApplicationID string `json:"application_id,omitempty"`
	Status        string `json:"status,omitempty"`
	OfferTitle    string `json:"offer_title,omitempty"`
	TrackingLink  string `json:"tracking_link,omitempty"`
	TrackingCode  string `json:"tracking_code,omitempty"`
	// ShowTracking gates the tracking panel: link present and status approved.
	ShowTracking bool `json:"show_tracking"`
}

// OfferView routes the viewer to the offer detail page for their role.
type OfferView struct {
	OfferID string `json:"offer_id,omitempty"`
	Route   string `json:"route,omitempty"`
}

// NewApplicationView has three mutually exclusive branches.
type NewApplicationView struct {
	Branch string `json:"branch"` // company_registration | offer_submission | generic

	CompanyName   string `json:"company_name,omitempty"`
	CompanyUserID string `json:"company_user_id,omitempty"`

	OfferID    string `json:"offer_id,omitempty"`
	OfferTitle string `json:"offer_title,omitempty"`

	Route string `json:"route,omitempty"`
}

// FlagView renders moderation outcomes: the admin queue card when the flagged
// user is identified, otherwise the end-user "your content was flagged" card.
type FlagView struct {
	AdminView bool `json:"admin_view"`

	ContentType     string   `json:"content_type,omitempty"`
	ContentID       string   `json:"content_id,omitempty"`
	FlagID          string   `json:"flag_id,omitempty"`
	FlaggedUserID   string   `json:"flagged_user_id,omitempty"`
	MatchedKeywords []string `json:"matched_keywords,omitempty"`
	ModerationURL   string   `json:"moderation_url,omitempty"`

	ReviewStatus string `json:"review_status,omitempty"`
	ActionTaken  string `json:"action_taken,omitempty"`
	Reason       string `json:"reason,omitempty"`

	Pending     bool   `json:"pending"`
	StatusColor string `json:"status_color,omitempty"`
}

var amountPattern = regexp.MustCompile(`\$[\d,]+(?:\.\d+)?`)

// ExtractAmount returns the first $-prefixed amount found in message, or "".
func ExtractAmount(message string) string {
	return amountPattern.FindString(message)
}

// Render resolves the display template for a notification. It is a pure
// function over the record and the viewer's role; absent metadata fields fall
// back to zero values rather than failing.
func Render(rec Record, viewer models.Role) View {
	view := View{
		Kind:    KindOf(rec.Type),
		Title:   rec.Title,
		Message: rec.Message,
		LinkURL: rec.LinkURL,
	}

	switch view.Kind {
	case KindPayment:
		view.Payment = renderPayment(rec, true)
	case KindPaymentPending:
		payment := renderPayment(rec, false)
		payment.OfferTitle = rec.Meta.String("offerTitle")
		payment.PaymentID = rec.Meta.String("paymentId")
		view.Payment = payment
	case KindPaymentFailed:
		view.Payment = renderPayment(rec, false)
	case KindMessage:
		if conversationID := rec.Meta.String("conversationId"); conversationID != "" {
			view.LinkURL = "/messages/" + conversationID
		}
	case KindApplication:
		view.Application = renderApplication(rec)
	case KindOffer:
		view.Offer = renderOffer(rec, viewer)
	case KindReview:
		// plain message plus the optional record link
	case KindNewApplication:
		view.NewApplication = renderNewApplication(rec)
	case KindContentFlag:
		view.Flag = renderFlag(rec)
	default:
		// announcements and unrecognised types pass the message through as
		// trusted HTML
		view.RawHTML = true
	}

	return view
}

func renderPayment(rec Record, withBreakdown bool) *PaymentView {
	amount := rec.Meta.Money("amount")
	if amount == "" {
		amount = ExtractAmount(rec.Message)
	}

	payment := &PaymentView{
		Amount:        amount,
		TransactionID: rec.Meta.String("transactionId"),
	}

	if withBreakdown &&
		rec.Meta.Has("grossAmount") && rec.Meta.Has("platformFee") && rec.Meta.Has("processingFee") {
		payment.Breakdown = &PaymentBreakdown{
			Gross:         rec.Meta.Money("grossAmount"),
			PlatformFee:   rec.Meta.Money("platformFee"),
			ProcessingFee: rec.Meta.Money("processingFee"),
		}
	}

	return payment
}

func renderApplication(rec Record) *ApplicationView {
	app := &ApplicationView{
		ApplicationID: rec.Meta.String("applicationId"),
		Status:        rec.Meta.String("applicationStatus"),
		OfferTitle:    rec.Meta.String("offerTitle"),
		TrackingLink:  rec.Meta.String("trackingLink"),
		TrackingCode:  rec.Meta.String("trackingCode"),
	}
	app.ShowTracking = app.TrackingLink != "" && app.Status == "approved"
	return app
}

func renderOffer(rec Record, viewer models.Role) *OfferView {
	offer := &OfferView{OfferID: rec.Meta.String("offerId")}
	if offer.OfferID == "" {
		return offer
	}
	if viewer == models.RoleCompany {
		offer.Route = "/company/offers/" + offer.OfferID
	} else {
		offer.Route = "/offers/" + offer.OfferID
	}
	return offer
}

func renderNewApplication(rec Record) *NewApplicationView {
	companyName := rec.Meta.String("companyName")
	companyUserID := rec.Meta.String("companyUserId")
	if companyName != "" && companyUserID != "" {
		return &NewApplicationView{
			Branch:        "company_registration",
			CompanyName:   companyName,
			CompanyUserID: companyUserID,
			Route:         "/admin/companies/" + companyUserID,
		}
	}

	if offerID := rec.Meta.String("offerId"); offerID != "" || rec.Meta.String("offerTitle") != "" {
		view := &NewApplicationView{
			Branch:     "offer_submission",
			OfferID:    offerID,
			OfferTitle: rec.Meta.String("offerTitle"),
		}
		if offerID != "" {
			view.Route = "/admin/offers/" + offerID
		}
		return view
	}

	return &NewApplicationView{Branch: "generic"}
}

func renderFlag(rec Record) *FlagView {
	flag := &FlagView{
		ContentType:     rec.Meta.String("contentType"),
		ContentID:       rec.Meta.String("contentId"),
		FlagID:          rec.Meta.String("flagId"),
		FlaggedUserID:   rec.Meta.String("flaggedUserId"),
		MatchedKeywords: rec.Meta.StringList("matchedKeywords"),
		ModerationURL:   rec.Meta.String("moderationUrl"),
		ReviewStatus:    rec.Meta.String("reviewStatus"),
		ActionTaken:     rec.Meta.String("actionTaken"),
		Reason:          rec.Meta.String("reason"),
	}

	flag.AdminView = flag.FlaggedUserID != ""
	if !flag.AdminView {
		flag.Pending = flag.ReviewStatus == "" || flag.ReviewStatus == "pending"
		if !flag.Pending {
			flag.StatusColor = flagStatusColor(flag.ReviewStatus)
		}
	}
	return flag
}

func flagStatusColor(status string) string {
	switch status {
	case "approved", "resolved":
		return "emerald"
	case "removed", "rejected":
		return "red"
	default:
		return "slate"
	}
}
