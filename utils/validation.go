package utils

import (
	"strings"
)

const (
	// IndividualSuffix is the Green API suffix of a one-to-one chat id
	IndividualSuffix = "@c.us"
	// GroupSuffix is the Green API suffix of a group chat id
	GroupSuffix = "@g.us"
)

// IsDigits reports whether s is non-empty and made only of ASCII decimal digits
func IsDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// DigitsOnly strips everything but decimal digits, so "+31 (6) 123-45" becomes "31612345"
func DigitsOnly(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// ChatIDFromPhone builds the individual chat id for a phone number
func ChatIDFromPhone(phone string) string {
	return phone + IndividualSuffix
}

// IsGroupJID checks if a chat id represents a group
func IsGroupJID(jid string) bool {
	return strings.HasSuffix(jid, GroupSuffix)
}

// IsIndividualJID checks if a chat id represents an individual contact
func IsIndividualJID(jid string) bool {
	return strings.HasSuffix(jid, IndividualSuffix)
}

// IsChatID reports whether jid already carries a chat suffix
func IsChatID(jid string) bool {
	return IsIndividualJID(jid) || IsGroupJID(jid)
}

// ExtractPhoneFromJID extracts the phone number from a chat id
func ExtractPhoneFromJID(jid string) string {
	phone, _, _ := strings.Cut(jid, "@")
	return phone
}
