package domain

// Access reasons reported by the entitlement check.
const (
	AccessReasonPromotional     = "promotional_period"
	AccessReasonBetaTester      = "beta_tester"
	AccessReasonPaid            = "paid"
	AccessReasonFreeTrial       = "free_trial"
	AccessReasonPaymentRequired = "payment_required"
)

// FreeTrialLimit is the number of reflections an unpaid, non-beta user
// may run before hitting the paywall.
const FreeTrialLimit = 1

// AccessDecision is the outcome of an entitlement check.
// RemainingFree is "unlimited" for beta/paid users and an integer count
// otherwise, mirroring the wire shape clients already consume.
type AccessDecision struct {
	HasAccess     bool   `json:"has_access"`
	Reason        string `json:"reason"`
	RemainingFree any    `json:"free_reflections_remaining"`
	Message       string `json:"message,omitempty"`
}

// Entitlement computes the tiered access decision for a user.
//
// Note: the /auth/access-check handler currently bypasses this in favor
// of a promotional everyone-has-access grant; the tiers stay here so the
// paywall can be re-enabled without rewriting the policy.
func Entitlement(u *User) AccessDecision {
	if u.IsBetaTester {
		return AccessDecision{
			HasAccess:     true,
			Reason:        AccessReasonBetaTester,
			RemainingFree: "unlimited",
		}
	}
	if u.HasPaid {
		return AccessDecision{
			HasAccess:     true,
			Reason:        AccessReasonPaid,
			RemainingFree: 0,
		}
	}
	if u.FreeReflectionsUsed < FreeTrialLimit {
		return AccessDecision{
			HasAccess:     true,
			Reason:        AccessReasonFreeTrial,
			RemainingFree: FreeTrialLimit - u.FreeReflectionsUsed,
		}
	}
	return AccessDecision{
		HasAccess:     false,
		Reason:        AccessReasonPaymentRequired,
		RemainingFree: 0,
	}
}

// PromotionalAccess is the grant every caller receives while the
// promotional period is active.
func PromotionalAccess() AccessDecision {
	return AccessDecision{
		HasAccess:     true,
		Reason:        AccessReasonPromotional,
		RemainingFree: "unlimited",
		Message:       "Free unlimited access during the promotional period!",
	}
}
