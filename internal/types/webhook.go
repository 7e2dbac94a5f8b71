package types

// Webhook event names published for document lifecycle changes
const (
	WebhookEventInvoiceSent        = "invoice.sent"
	WebhookEventInvoicePaid        = "invoice.paid"
	WebhookEventOfferSent          = "offer.sent"
	WebhookEventOfferAccepted      = "offer.accepted"
	WebhookEventOfferRejected      = "offer.rejected"
	WebhookEventDocumentDuplicated = "document.duplicated"
	WebhookEventStatusOverridden   = "document.status_overridden"
)
