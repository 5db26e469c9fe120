package main_test

import (
	"context"

	"github.com/getkin/kin-openapi/openapi3"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("OpenAPI document", func() {
	var doc *openapi3.T

	BeforeEach(func() {
		loader := openapi3.NewLoader()
		var err error
		doc, err = loader.LoadFromFile("api/openapi.yml")
		Expect(err).NotTo(HaveOccurred())
	})

	It("is a valid OpenAPI 3 document", func() {
		Expect(doc.Validate(context.Background())).To(Succeed())
	})

	It("documents every billing endpoint", func() {
		for _, path := range []string{
			"/auth/login",
			"/auth/refresh",
			"/clients",
			"/clients/{id}",
			"/engagements",
			"/engagements/{id}",
			"/time-logs",
			"/time-logs/{id}",
			"/invoices",
			"/invoices/{id}",
			"/invoices/{id}/status",
		} {
			Expect(doc.Paths.Find(path)).NotTo(BeNil(), "missing path %s", path)
		}
	})

	It("declares invoice generation as a POST with a required body", func() {
		item := doc.Paths.Find("/invoices")
		Expect(item).NotTo(BeNil())
		Expect(item.Post).NotTo(BeNil())
		Expect(item.Post.RequestBody).NotTo(BeNil())
		Expect(item.Post.RequestBody.Value.Required).To(BeTrue())
	})
})
