package common

// Canonical service names under which the suite's contracts register
// themselves. All are within the 32-byte identifier budget.
const (
	ServiceRegistry    = "ContractRegistry"
	ServiceToken       = "Token"
	ServiceCrowdsale   = "Crowdsale"
	ServiceTierManager = "TierManager"
	ServiceVesting     = "VestingEngine"
	ServiceOracle      = "PriceOracle"
	ServiceTreasury    = "Treasury"
)
