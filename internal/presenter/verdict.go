// Package presenter renders check results for people.
package presenter

const (
	IsPalindromeMessage  = "Is Palindrome"
	NotPalindromeMessage = "Not a Palindrome"
)

// Verdict returns the fixed message for a check result
func Verdict(isPalindrome bool) string {
	if isPalindrome {
		return IsPalindromeMessage
	}
	return NotPalindromeMessage
}
