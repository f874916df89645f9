package validate

import (
	"regexp"
	"strings"
)

var (
	reEmail  = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	reID     = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
	reCoupon = regexp.MustCompile(`^[A-Z0-9]{3,16}$`)
	reCat    = regexp.MustCompile(`^(Clothing|Electronics|Home|Accessories)$`)
	reStatus = regexp.MustCompile(`^(pending|processing|shipped|delivered|cancelled)$`)
)

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 254 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// Name validates a displayable name with a reasonable max length.
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 60 {
		return "", false
	}
	return s, true
}

// ID validates a simple resource identifier (product/user/order ids).
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

func CouponCode(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reCoupon.MatchString(s)
}

func Category(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reCat.MatchString(s)
}

func OrderStatus(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reStatus.MatchString(s)
}

// Rating checks the 1..5 star window.
func Rating(n int) bool {
	return n >= 1 && n <= 5
}
