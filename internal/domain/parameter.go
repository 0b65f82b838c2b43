package domain

import "time"

// Parameter store keys.
const (
	ParamSystemDate               = "System_Date"
	ParamInterestDivisor          = "Interest_Default_Divisor"
	ParamPastValueDateLimitDays   = "Past_Value_Date_Limit_Days"
	ParamFutureValueDateLimitDays = "Future_Value_Date_Limit_Days"
	ParamLastEOMDate              = "Last_EOM_Date"
	ParamEODAdminUser             = "EOD_Admin_User"
	ParamSettlementGainThreshold  = "Settlement_Gain_Threshold"
	ParamSettlementLossThreshold  = "Settlement_Loss_Threshold"
	ParamSettlementAlertsEnabled  = "Settlement_Alerts_Enabled"
)

// Parameter is one row of the parameter store.
type Parameter struct {
	Name      string
	Value     string
	UpdatedBy string
	UpdatedAt time.Time
}
