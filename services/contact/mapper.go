package contact

import (
	"strings"

	dataversemodels "github.com/PartnerPortal/PartnerPortal-Backend/providers/dataverse/dataverse_models"
)

func ToProfile(rhs *dataversemodels.Contact) *Profile {
	fullName := rhs.FullName
	if fullName == "" {
		fullName = strings.TrimSpace(rhs.FirstName + " " + rhs.LastName)
	}

	profile := &Profile{
		ID:        rhs.ContactID,
		FirstName: rhs.FirstName,
		LastName:  rhs.LastName,
		FullName:  fullName,
		Email:     rhs.Email,
		Phone:     rhs.Phone,
		JobTitle:  rhs.JobTitle,
		CreatedAt: rhs.CreatedOn,
		UpdatedAt: rhs.ModifiedOn,
	}

	if rhs.ParentCustomerID != "" {
		profile.Company = &Company{
			ID:   rhs.ParentCustomerID,
			Name: rhs.ParentCustomerName,
		}
	}

	return profile
}

func ToProfileCollection(contacts []dataversemodels.Contact) []Profile {
	response := make([]Profile, len(contacts))
	for i := range contacts {
		response[i] = *ToProfile(&contacts[i])
	}
	return response
}

func ToCompany(rhs *dataversemodels.Account) *Company {
	company := &Company{
		ID:            rhs.AccountID,
		Name:          rhs.Name,
		AccountNumber: rhs.AccountNumber,
		Phone:         rhs.Phone,
		Website:       rhs.Website,
	}
	if rhs.Revenue.Valid {
		company.Revenue = rhs.Revenue.Decimal.StringFixed(2)
	}
	return company
}

func ToContactPatch(update ProfileUpdate) dataversemodels.ContactPatch {
	return dataversemodels.ContactPatch{
		FirstName: trimmed(update.FirstName),
		LastName:  trimmed(update.LastName),
		Phone:     trimmed(update.Phone),
		JobTitle:  trimmed(update.JobTitle),
	}
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
