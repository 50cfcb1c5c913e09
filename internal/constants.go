package internal

const (
	COOKIE_ACCESS_TOKEN_NAME = "billed_access_token"
	COOKIE_REDIRECT_NAME     = "billed_redirect"
	COOKIE_BILL_DRAFT_NAME   = "billed_bill_draft"
)
