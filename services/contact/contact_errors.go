package contact

import "fmt"

var (
	ErrContactNotFound  = fmt.Errorf("contact not found")
	ErrInvalidContactID = fmt.Errorf("invalid contact id")
	ErrAccountNotFound  = fmt.Errorf("account not found")
	ErrInvalidAccountID = fmt.Errorf("invalid account id")
)

type ContactError struct {
	ErrorObj error
	// Key is the id or email the lookup was made with
	Key   string
	Other []error
}

func (c *ContactError) Error() string {
	return c.ErrorObj.Error()
}

func (c *ContactError) Unwrap() error {
	return c.ErrorObj
}

func (c *ContactError) ErrorOut() string {
	return fmt.Sprintf("%v: %v", c.ErrorObj.Error(), c.Key)
}

func NewContactError(err error, key string, e ...error) *ContactError {
	return &ContactError{
		ErrorObj: err,
		Key:      key,
		Other:    e,
	}
}
