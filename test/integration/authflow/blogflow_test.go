// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkwell Contributors

//go:build integration

package authflow_test

import (
	"context"

	"github.com/oklog/ulid/v2"
	. "github.com/onsi/ginkgo/v2" //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"    //nolint:revive // gomega convention

	"github.com/inkwell/inkwell/internal/blog"
	"github.com/inkwell/inkwell/pkg/errutil"
)

var _ = Describe("Blog content", func() {
	var (
		ctx        context.Context
		authorID   ulid.ULID
		categoryID ulid.ULID
	)

	BeforeEach(func() {
		ctx = context.Background()

		result, err := env.Auth.Register(ctx, uniqueEmail("author"), testPassword, "Alice", "Johnson")
		Expect(err).NotTo(HaveOccurred())
		authorID, err = ulid.Parse(result.User.ID)
		Expect(err).NotTo(HaveOccurred())

		category, err := env.Categories.CreateCategory(ctx, "Technology "+ulid.Make().String(),
			"Articles about software", "https://example.com/images/technology.jpg")
		Expect(err).NotTo(HaveOccurred())
		categoryID = category.ID
	})

	Describe("Posts", func() {
		It("round-trips a post with its joined author and category", func() {
			post, err := env.Posts.CreatePost(ctx, authorID, "First post", "Hello world", true, categoryID)
			Expect(err).NotTo(HaveOccurred())

			view, err := env.Posts.GetPost(ctx, post.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(view.Title).To(Equal("First post"))
			Expect(view.Author.FirstName).To(Equal("Alice"))
			Expect(view.Category.ID).To(Equal(categoryID.String()))
		})

		It("refuses updates from anyone but the author", func() {
			post, err := env.Posts.CreatePost(ctx, authorID, "Owned post", "Content", true, categoryID)
			Expect(err).NotTo(HaveOccurred())

			other, err := env.Auth.Register(ctx, uniqueEmail("other"), testPassword, "Bob", "Smith")
			Expect(err).NotTo(HaveOccurred())
			otherID, err := ulid.Parse(other.User.ID)
			Expect(err).NotTo(HaveOccurred())

			title := "Hijacked"
			_, err = env.Posts.UpdatePost(ctx, otherID, post.ID, blog.PostUpdate{Title: &title})
			Expect(err).To(HaveOccurred())
			Expect(errutil.Code(err)).To(Equal(blog.CodeNotAuthor))
		})

		It("filters listings by published state and author", func() {
			_, err := env.Posts.CreatePost(ctx, authorID, "Published one", "Content", true, categoryID)
			Expect(err).NotTo(HaveOccurred())
			_, err = env.Posts.CreatePost(ctx, authorID, "Draft one", "Content", false, categoryID)
			Expect(err).NotTo(HaveOccurred())

			published := true
			page, err := env.Posts.ListPosts(ctx, blog.PostFilters{
				Published: &published,
				AuthorID:  &authorID,
			}, ulid.ULID{}, 50)
			Expect(err).NotTo(HaveOccurred())
			Expect(page.Posts).To(HaveLen(1))
			Expect(page.Posts[0].Title).To(Equal("Published one"))
		})

		It("deletes a post and cascades to its comments", func() {
			post, err := env.Posts.CreatePost(ctx, authorID, "Doomed post", "Content", true, categoryID)
			Expect(err).NotTo(HaveOccurred())

			_, err = env.Comments.CreateComment(ctx, post.ID, "Carol", "Nice post!")
			Expect(err).NotTo(HaveOccurred())

			Expect(env.Posts.DeletePost(ctx, authorID, post.ID)).To(Succeed())

			_, err = env.Posts.GetPost(ctx, post.ID)
			Expect(errutil.Code(err)).To(Equal(blog.CodePostNotFound))

			_, err = env.Comments.ListComments(ctx, post.ID)
			Expect(errutil.Code(err)).To(Equal(blog.CodeEmptyResult))
		})
	})

	Describe("Comments", func() {
		It("lets only the post author delete comments", func() {
			post, err := env.Posts.CreatePost(ctx, authorID, "Discussed post", "Content", true, categoryID)
			Expect(err).NotTo(HaveOccurred())

			comment, err := env.Comments.CreateComment(ctx, post.ID, "Carol", "First!")
			Expect(err).NotTo(HaveOccurred())

			other, err := env.Auth.Register(ctx, uniqueEmail("commenter"), testPassword, "Bob", "Smith")
			Expect(err).NotTo(HaveOccurred())
			otherID, err := ulid.Parse(other.User.ID)
			Expect(err).NotTo(HaveOccurred())

			err = env.Comments.DeleteComment(ctx, otherID, comment.ID)
			Expect(errutil.Code(err)).To(Equal(blog.CodeNotAuthor))

			Expect(env.Comments.DeleteComment(ctx, authorID, comment.ID)).To(Succeed())
		})
	})

	Describe("Categories", func() {
		It("counts only published posts", func() {
			_, err := env.Posts.CreatePost(ctx, authorID, "Counted", "Content", true, categoryID)
			Expect(err).NotTo(HaveOccurred())
			_, err = env.Posts.CreatePost(ctx, authorID, "Not counted", "Content", false, categoryID)
			Expect(err).NotTo(HaveOccurred())

			listed, err := env.Categories.ListCategories(ctx)
			Expect(err).NotTo(HaveOccurred())

			var found *blog.CategoryWithCount
			for _, c := range listed {
				if c.ID == categoryID.String() {
					found = c
					break
				}
			}
			Expect(found).NotTo(BeNil())
			Expect(found.TotalPosts).To(Equal(1))
		})
	})
})
