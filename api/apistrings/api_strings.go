package apistrings

const (
	/// Session Related Strings
	Unauthorized       = "unauthorized request"
	InvalidBearerToken = "invalid token, expects bearer token"
	SessionEnded       = "session has ended, please log in again"
	Forbidden          = "you do not have access to this resource"
	InvalidLoginInput  = "please enter a valid email and password"
	IncorrectEmailPass = "incorrect email or password"
	UserNotFound       = "user or account does not exist"
	LoggedOut          = "logged out successfully"
	SessionRetrieved   = "session retrieved successfully"
	LoginSuccessful    = "login successful"

	/// Core Functionality Error
	ServerError  = "a server error occurred, please try again later"
	InvalidInput = "invalid request, please check submitted information"

	/// CRM Related Strings
	ContactNotLinked   = "no CRM contact is linked to this account"
	ContactNotFound    = "contact does not exist"
	InvalidContactID   = "entered contact ID is invalid"
	AccountNotFound    = "account does not exist"
	InvalidAccountID   = "entered account ID is invalid"
	EmptyProfileUpdate = "nothing to update, send at least one field"
	CRMUnavailable     = "the CRM is unavailable, please try again later"

	/// Deal Related Strings
	DealNotFound  = "deal does not exist"
	InvalidDealID = "entered deal ID is invalid"
	InvalidAmount = "amount must not be negative"
	NotDealOwner  = "only the owner or an admin can change this deal"

	/// Theme Related Strings
	InvalidTheme = "theme must be one of light, dark or system"
)
