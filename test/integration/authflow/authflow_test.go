// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkwell Contributors

//go:build integration

package authflow_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2" //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"    //nolint:revive // gomega convention

	"github.com/inkwell/inkwell/internal/auth"
	"github.com/inkwell/inkwell/pkg/errutil"
)

const testPassword = "Password123"

var _ = Describe("Account lifecycle", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	Describe("Registration", func() {
		It("creates an account and issues both tokens", func() {
			email := uniqueEmail("register")
			result, err := env.Auth.Register(ctx, email, testPassword, "Alice", "Johnson")
			Expect(err).NotTo(HaveOccurred())

			Expect(result.User.Email).To(Equal(email))
			Expect(result.User.ID).NotTo(BeEmpty())
			Expect(result.Tokens.AccessToken).NotTo(BeEmpty())
			Expect(result.Tokens.RefreshToken).NotTo(BeEmpty())
		})

		It("rejects a duplicate email", func() {
			email := uniqueEmail("duplicate")
			_, err := env.Auth.Register(ctx, email, testPassword, "Alice", "Johnson")
			Expect(err).NotTo(HaveOccurred())

			_, err = env.Auth.Register(ctx, email, testPassword, "Bob", "Smith")
			Expect(err).To(HaveOccurred())
			Expect(errutil.Code(err)).To(Equal(auth.CodeEmailTaken))
		})
	})

	Describe("Login", func() {
		It("answers wrong password and unknown email with the same code", func() {
			email := uniqueEmail("login")
			_, err := env.Auth.Register(ctx, email, testPassword, "Alice", "Johnson")
			Expect(err).NotTo(HaveOccurred())

			_, wrongErr := env.Auth.Login(ctx, email, "WrongPass1")
			_, unknownErr := env.Auth.Login(ctx, uniqueEmail("nobody"), testPassword)

			Expect(errutil.Code(wrongErr)).To(Equal(auth.CodeInvalidCredentials))
			Expect(errutil.Code(unknownErr)).To(Equal(auth.CodeInvalidCredentials))
		})

		It("issues a fresh pair on valid credentials", func() {
			email := uniqueEmail("login-ok")
			registered, err := env.Auth.Register(ctx, email, testPassword, "Alice", "Johnson")
			Expect(err).NotTo(HaveOccurred())

			loggedIn, err := env.Auth.Login(ctx, email, testPassword)
			Expect(err).NotTo(HaveOccurred())
			Expect(loggedIn.User.ID).To(Equal(registered.User.ID))
			Expect(loggedIn.Tokens.RefreshToken).NotTo(BeEmpty())
		})

		It("invalidates the previous refresh token on a new login", func() {
			email := uniqueEmail("single-session")
			first, err := env.Auth.Register(ctx, email, testPassword, "Alice", "Johnson")
			Expect(err).NotTo(HaveOccurred())

			_, err = env.Auth.Login(ctx, email, testPassword)
			Expect(err).NotTo(HaveOccurred())

			// Only one refresh token per user is ever live.
			_, err = env.Auth.Refresh(ctx, first.Tokens.RefreshToken)
			Expect(err).To(HaveOccurred())
			Expect(errutil.Code(err)).To(Equal(auth.CodeInvalidToken))
		})
	})

	Describe("Token validation", func() {
		It("resolves the access token to its principal", func() {
			email := uniqueEmail("validate")
			result, err := env.Auth.Register(ctx, email, testPassword, "Alice", "Johnson")
			Expect(err).NotTo(HaveOccurred())

			principal, err := env.Auth.ValidateToken(ctx, result.Tokens.AccessToken)
			Expect(err).NotTo(HaveOccurred())
			Expect(principal.ID).To(Equal(result.User.ID))
			Expect(principal.Email).To(Equal(email))
		})

		It("rejects a refresh token presented as an access token", func() {
			email := uniqueEmail("kind-confusion")
			result, err := env.Auth.Register(ctx, email, testPassword, "Alice", "Johnson")
			Expect(err).NotTo(HaveOccurred())

			_, err = env.Auth.ValidateToken(ctx, result.Tokens.RefreshToken)
			Expect(err).To(HaveOccurred())
			Expect(errutil.Code(err)).To(Equal(auth.CodeInvalidToken))
		})
	})

	Describe("Refresh rotation", func() {
		It("rotates the token and kills the consumed one", func() {
			email := uniqueEmail("rotate")
			result, err := env.Auth.Register(ctx, email, testPassword, "Alice", "Johnson")
			Expect(err).NotTo(HaveOccurred())

			rotated, err := env.Auth.Refresh(ctx, result.Tokens.RefreshToken)
			Expect(err).NotTo(HaveOccurred())
			Expect(rotated.RefreshToken).NotTo(Equal(result.Tokens.RefreshToken))

			// Replaying the consumed token fails.
			_, err = env.Auth.Refresh(ctx, result.Tokens.RefreshToken)
			Expect(err).To(HaveOccurred())
			Expect(errutil.Code(err)).To(Equal(auth.CodeInvalidToken))

			// The rotated token keeps working.
			_, err = env.Auth.Refresh(ctx, rotated.RefreshToken)
			Expect(err).NotTo(HaveOccurred())
		})
	})

	Describe("Logout", func() {
		It("revokes the live refresh token", func() {
			email := uniqueEmail("logout")
			result, err := env.Auth.Register(ctx, email, testPassword, "Alice", "Johnson")
			Expect(err).NotTo(HaveOccurred())

			env.Auth.Logout(ctx, result.Tokens.RefreshToken)

			_, err = env.Auth.Refresh(ctx, result.Tokens.RefreshToken)
			Expect(err).To(HaveOccurred())
			Expect(errutil.Code(err)).To(Equal(auth.CodeInvalidToken))
		})
	})

	Describe("Password reset", func() {
		It("consumes the ticket exactly once", func() {
			email := uniqueEmail("reset")
			_, err := env.Auth.Register(ctx, email, testPassword, "Alice", "Johnson")
			Expect(err).NotTo(HaveOccurred())

			ticket, err := env.Auth.ForgotPassword(ctx, email)
			Expect(err).NotTo(HaveOccurred())
			Expect(ticket).NotTo(BeEmpty())

			Expect(env.Auth.ResetPassword(ctx, ticket, "NewPassword1")).To(Succeed())

			// Old password is dead, new one works.
			_, err = env.Auth.Login(ctx, email, testPassword)
			Expect(errutil.Code(err)).To(Equal(auth.CodeInvalidCredentials))
			_, err = env.Auth.Login(ctx, email, "NewPassword1")
			Expect(err).NotTo(HaveOccurred())

			// The ticket cannot be replayed.
			err = env.Auth.ResetPassword(ctx, ticket, "OtherPass1")
			Expect(err).To(HaveOccurred())
			Expect(errutil.Code(err)).To(Equal(auth.CodeTicketInvalid))
		})

		It("treats each issued ticket as independently single-use", func() {
			email := uniqueEmail("reset-twice")
			_, err := env.Auth.Register(ctx, email, testPassword, "Alice", "Johnson")
			Expect(err).NotTo(HaveOccurred())

			first, err := env.Auth.ForgotPassword(ctx, email)
			Expect(err).NotTo(HaveOccurred())
			second, err := env.Auth.ForgotPassword(ctx, email)
			Expect(err).NotTo(HaveOccurred())
			Expect(second).NotTo(Equal(first))

			Expect(env.Auth.ResetPassword(ctx, second, "NewPassword1")).To(Succeed())
			Expect(env.Auth.ResetPassword(ctx, first, "NewPassword2")).To(Succeed())

			err = env.Auth.ResetPassword(ctx, first, "OtherPass1")
			Expect(err).To(HaveOccurred())
			Expect(errutil.Code(err)).To(Equal(auth.CodeTicketInvalid))
		})

		It("does not revoke the live session", func() {
			email := uniqueEmail("reset-session")
			result, err := env.Auth.Register(ctx, email, testPassword, "Alice", "Johnson")
			Expect(err).NotTo(HaveOccurred())

			ticket, err := env.Auth.ForgotPassword(ctx, email)
			Expect(err).NotTo(HaveOccurred())
			Expect(env.Auth.ResetPassword(ctx, ticket, "NewPassword1")).To(Succeed())

			// The pre-reset refresh token still rotates.
			_, err = env.Auth.Refresh(ctx, result.Tokens.RefreshToken)
			Expect(err).NotTo(HaveOccurred())
		})
	})
})
