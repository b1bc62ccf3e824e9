package model

// CostCenter groups expenses for a client. List calls project it down to id
// and name.
type CostCenter struct {
	ID           ID        `json:"id"`
	ClientID     ID        `json:"clientId,omitempty"`
	Name         string    `json:"name"`
	IsActive     bool      `json:"isActive"`
	IsDeleted    bool      `json:"isDeleted"`
	CreatedDate  Timestamp `json:"createdDate"`
	ModifiedDate Timestamp `json:"modifiedDate"`
}

// ExpenseType categorizes expenses within a single cost center.
type ExpenseType struct {
	ID           ID        `json:"id"`
	CostCenterID ID        `json:"costCenterId,omitempty"`
	Name         string    `json:"name"`
	IsDeleted    bool      `json:"isDeleted"`
	CreatedDate  Timestamp `json:"createdDate"`
	ModifiedDate Timestamp `json:"modifiedDate"`
}

// APIKey is a client API key managed through the portal.
type APIKey struct {
	ID           ID        `json:"id"`
	Key          string    `json:"key"`
	IsRevoked    bool      `json:"isRevoked"`
	IsDeleted    bool      `json:"isDeleted"`
	CreatedDate  Timestamp `json:"createdDate"`
	ModifiedDate Timestamp `json:"modifiedDate"`
}

// ListQuery carries pagination and filtering for list endpoints.
type ListQuery struct {
	ShowAll    bool
	PageNumber int
	PageSize   int
}

// DefaultListQuery lists everything, deleted rows included, on one page.
func DefaultListQuery() ListQuery {
	return ListQuery{ShowAll: true, PageNumber: 1, PageSize: 100}
}

// ActiveCostCenters returns the cost centers not flagged as deleted.
func ActiveCostCenters(centers []CostCenter) []CostCenter {
	out := make([]CostCenter, 0, len(centers))
	for _, c := range centers {
		if !c.IsDeleted {
			out = append(out, c)
		}
	}
	return out
}
