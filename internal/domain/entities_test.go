package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormattedPrice(t *testing.T) {
	assert.Equal(t, "$14.99", Book{Price: 14.99}.FormattedPrice())
	assert.Equal(t, "$18.00", Book{Price: 18}.FormattedPrice())
	assert.Equal(t, "$0.00", Book{}.FormattedPrice())
}

func TestCTAButtonTextFallback(t *testing.T) {
	assert.Equal(t, "Buy Now", Book{}.CTAButtonText())
	assert.Equal(t, "Pre-order", Book{CTAText: "Pre-order"}.CTAButtonText())
}

func TestCoverURL(t *testing.T) {
	base := "http://localhost:8000"

	assert.Empty(t, Book{}.CoverURL(base))
	assert.Equal(t, "https://cdn.example.com/x.jpg",
		Book{CoverImage: "https://cdn.example.com/x.jpg"}.CoverURL(base))
	assert.Equal(t, "http://localhost:8000/uploads/x.jpg",
		Book{CoverImage: "/uploads/x.jpg"}.CoverURL(base))
	assert.Equal(t, "http://localhost:8000/uploads/x.jpg",
		Book{CoverImage: "uploads/x.jpg"}.CoverURL(base+"/"))
}

func TestCriteriaIsDefault(t *testing.T) {
	assert.True(t, DefaultCriteria().IsDefault())
	assert.False(t, Criteria{Category: "Fiction"}.IsDefault())
	assert.False(t, Criteria{Category: CategoryAll, Query: "x"}.IsDefault())
	assert.False(t, Criteria{Category: CategoryAll, FeaturedOnly: true}.IsDefault())
}

func TestUserIsAdmin(t *testing.T) {
	assert.True(t, User{Role: RoleAdmin}.IsAdmin())
	assert.False(t, User{Role: RoleUser}.IsAdmin())
	assert.False(t, User{}.IsAdmin())
}

func TestMessagePrefersBackendDetail(t *testing.T) {
	err := &APIError{Status: 401, Detail: "Incorrect email or password", Err: ErrAuthFailed}
	assert.Equal(t, "Incorrect email or password", Message(err))

	bare := &APIError{Status: 401, Err: ErrAuthFailed}
	assert.Equal(t, "Invalid email or password", Message(bare))

	assert.Equal(t, "Something went wrong, please try again", Message(assert.AnError))
	assert.Empty(t, Message(nil))
}
