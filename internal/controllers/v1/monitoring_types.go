package v1

import (
	"github.com/shopspring/decimal"
	"github.com/vending-machines/backend/internal/types"
)

// statusActive is the name of the device status that counts a device as
// active. It is compared case-insensitively.
const statusActive = "Активен"

type NetworkStatus struct {
	Total      int             `json:"total" example:"3"`          // Number of devices matching the filter
	Active     int             `json:"active" example:"2"`         // Number of active devices
	Inactive   int             `json:"inactive" example:"1"`       // Number of devices that are not active
	Efficiency decimal.Decimal `json:"efficiency" example:"66.67"` // Share of active devices in percent
	TotalMoney decimal.Decimal `json:"totalMoney" example:"18250"` // Sum of all sales of the devices
	Devices    []Device        `json:"devices"`                    // The devices matching the filter
}

type NetworkStatusResponse struct {
	Error *string        `json:"error" example:"an error occurred on the server during your request"` // The error, if any occurred
	Data  *NetworkStatus `json:"data"`                                                                // The network status
}

type NetworkStatusQueryFilter struct {
	Status         string `form:"status"`         // By string in the name of the device status
	ConnectionType string `form:"connectionType"` // By string in the name of the device type
}

type Summary struct {
	Date               types.Date      `json:"date" example:"2025-04-02"`         // The day the summary is for
	MoneyInMachines    decimal.Decimal `json:"moneyInMachines" example:"54000"`   // Value of all products stocked in the devices
	ChangeInMachines   decimal.Decimal `json:"changeInMachines" example:"5400"`   // Estimated change in the devices, 10% of the stocked value
	RevenueToday       decimal.Decimal `json:"revenueToday" example:"4820"`       // Revenue on the day
	RevenueYesterday   decimal.Decimal `json:"revenueYesterday" example:"5130"`   // Revenue on the day before
	CollectedToday     decimal.Decimal `json:"collectedToday" example:"4820"`     // Money collected on the day
	CollectedYesterday decimal.Decimal `json:"collectedYesterday" example:"5130"` // Money collected on the day before
	ServicedToday      int64           `json:"servicedToday" example:"2"`         // Number of services on the day
	ServicedYesterday  int64           `json:"servicedYesterday" example:"1"`     // Number of services on the day before
}

type SummaryResponse struct {
	Error *string  `json:"error" example:"dates must be in the format YYYY-MM-DD"` // The error, if any occurred
	Data  *Summary `json:"data"`                                                   // The summary
}

type SummaryQueryFilter struct {
	Date types.Date `form:"date"` // The day to summarize. Defaults to today.
}

type SalesTrendPoint struct {
	Date  types.Date      `json:"date" example:"2025-04-02"` // The day
	Value decimal.Decimal `json:"value" example:"4820"`      // Revenue or number of sales on the day
}

type SalesTrendResponse struct {
	Error *string           `json:"error" example:"the end date must not be before the start date"` // The error, if any occurred
	Data  []SalesTrendPoint `json:"data"`                                                           // One point per day with sales
}

type SalesTrendQueryFilter struct {
	StartDate types.Date `form:"startDate"`             // First day. Defaults to nine days before the end date.
	EndDate   types.Date `form:"endDate"`               // Last day. Defaults to today.
	ByAmount  bool       `form:"byAmount,default=true"` // Sum the revenue instead of counting the sales
}
