package auth

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestAuth(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Auth Suite")
}

var _ = Describe("HashPassword", func() {
	It("should produce a hash that verifies against the original password", func() {
		hash, err := HashPassword("s3cret-pass")
		Expect(err).NotTo(HaveOccurred())
		Expect(hash).NotTo(Equal("s3cret-pass"))
		Expect(CheckPasswordHash("s3cret-pass", hash)).To(BeTrue())
	})

	It("should reject a wrong password", func() {
		hash, err := HashPassword("s3cret-pass")
		Expect(err).NotTo(HaveOccurred())
		Expect(CheckPasswordHash("wrong-pass", hash)).To(BeFalse())
	})
})

var _ = Describe("JWTManager", func() {
	var manager *JWTManager

	BeforeEach(func() {
		manager = NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	})

	When("validating a freshly issued access token", func() {
		It("should round-trip the claims", func() {
			token, err := manager.GenerateToken("user-1", "tester", "tester@example.com")
			Expect(err).NotTo(HaveOccurred())

			claims, err := manager.ValidateToken(token)
			Expect(err).NotTo(HaveOccurred())
			Expect(claims.UserID).To(Equal("user-1"))
			Expect(claims.Username).To(Equal("tester"))
			Expect(claims.Email).To(Equal("tester@example.com"))
		})
	})

	When("validating a refresh token", func() {
		It("should carry only the user ID", func() {
			token, err := manager.GenerateRefreshToken("user-1")
			Expect(err).NotTo(HaveOccurred())

			claims, err := manager.ValidateToken(token)
			Expect(err).NotTo(HaveOccurred())
			Expect(claims.UserID).To(Equal("user-1"))
			Expect(claims.Username).To(BeEmpty())
		})
	})

	When("the token is signed with a different secret", func() {
		It("should be rejected", func() {
			other := NewJWTManager("other-secret", time.Hour, 24*time.Hour)
			token, err := other.GenerateToken("user-1", "tester", "tester@example.com")
			Expect(err).NotTo(HaveOccurred())

			_, err = manager.ValidateToken(token)
			Expect(err).To(HaveOccurred())
		})
	})

	When("the token is expired", func() {
		It("should be rejected", func() {
			expired := NewJWTManager("test-secret", -time.Minute, 24*time.Hour)
			token, err := expired.GenerateToken("user-1", "tester", "tester@example.com")
			Expect(err).NotTo(HaveOccurred())

			_, err = manager.ValidateToken(token)
			Expect(err).To(HaveOccurred())
		})
	})

	When("the token is malformed", func() {
		It("should be rejected", func() {
			_, err := manager.ValidateToken("not-a-token")
			Expect(err).To(HaveOccurred())
		})
	})
})
