package access

// PaymentTier is the price level an admin assigns to a chapter.
type PaymentTier string

const (
	PaymentFree          PaymentTier = "FREE"
	PaymentTrialIncluded PaymentTier = "TRIAL_INCLUDED"
	PaymentMemberOnly    PaymentTier = "MEMBER_ONLY"
	PaymentPremium       PaymentTier = "PREMIUM"
)

// UserTier is the subscription level of a mobile app user.
type UserTier string

const (
	UserFree   UserTier = "FREE"
	UserTrial  UserTier = "TRIAL"
	UserMember UserTier = "MEMBER"
)

func (p PaymentTier) Valid() bool {
	switch p {
	case PaymentFree, PaymentTrialIncluded, PaymentMemberOnly, PaymentPremium:
		return true
	}
	return false
}

func (u UserTier) Valid() bool {
	switch u {
	case UserFree, UserTrial, UserMember:
		return true
	}
	return false
}

// CanAccess reports whether a user of the given tier may read content priced
// at the given payment tier. Unknown payment tiers deny.
func CanAccess(payment PaymentTier, user UserTier) bool {
	switch payment {
	case PaymentFree:
		return true
	case PaymentTrialIncluded:
		return user == UserTrial || user == UserMember
	case PaymentMemberOnly, PaymentPremium:
		return user == UserMember
	default:
		return false
	}
}
