package api

import (
	"net/http"

	"github.com/go-openapi/spec"

	respond "github.com/jhuonas/ai-snippet-service/internal/api/respond"
	"github.com/jhuonas/ai-snippet-service/internal/api/validate"
)

const swaggerPath = "/api-docs/swagger.json"

func ref(name string) *spec.Schema { return spec.RefSchema("#/definitions/" + name) }

func errorResponse(desc string) *spec.Response {
	return spec.NewResponse().WithDescription(desc).WithSchema(ref("ErrorResponse"))
}

// SwaggerDoc describes the snippet API as a Swagger 2.0 document.
func SwaggerDoc() *spec.Swagger {
	snippet := (&spec.Schema{}).Typed("object", "").
		WithRequired("id", "text", "summary", "createdAt").
		SetProperty("id", *spec.StringProperty().WithDescription("24-character hex object id")).
		SetProperty("text", *spec.StringProperty()).
		SetProperty("summary", *spec.StringProperty()).
		SetProperty("createdAt", *spec.DateTimeProperty())

	page := (&spec.Schema{}).Typed("object", "").
		WithRequired("data", "total", "take", "skip").
		SetProperty("data", *spec.ArrayProperty(ref("Snippet"))).
		SetProperty("total", *spec.Int64Property()).
		SetProperty("take", *spec.Int64Property()).
		SetProperty("skip", *spec.Int64Property())

	violation := (&spec.Schema{}).Typed("object", "").
		SetProperty("field", *spec.StringProperty()).
		SetProperty("reason", *spec.StringProperty()).
		SetProperty("message", *spec.StringProperty())

	errResp := (&spec.Schema{}).Typed("object", "").
		WithRequired("error", "code").
		SetProperty("error", *spec.StringProperty()).
		SetProperty("code", *spec.Int64Property()).
		SetProperty("message", *spec.StringProperty()).
		SetProperty("violations", *spec.ArrayProperty(ref("Violation")))

	createBody := (&spec.Schema{}).Typed("object", "").
		WithRequired("text").
		SetProperty("text", *spec.StringProperty().WithMinLength(1).WithMaxLength(validate.MaxTextLength))

	create := spec.NewOperation("createSnippet").
		WithSummary("Create a snippet and summarize it").
		WithTags("snippets").
		WithConsumes("application/json").
		WithProduces("application/json").
		AddParam(spec.BodyParam("body", createBody).AsRequired()).
		RespondsWith(http.StatusCreated, spec.NewResponse().WithDescription("Created").WithSchema(ref("Snippet"))).
		RespondsWith(http.StatusBadRequest, errorResponse("Validation failed")).
		RespondsWith(http.StatusInternalServerError, errorResponse("AI summary failed"))

	list := spec.NewOperation("listSnippets").
		WithSummary("List snippets, newest first").
		WithTags("snippets").
		WithProduces("application/json").
		AddParam(spec.QueryParam("take").Typed("integer", "int32").
			WithMinimum(validate.MinTake, false).WithMaximum(validate.MaxTake, false).WithDefault(10)).
		AddParam(spec.QueryParam("skip").Typed("integer", "int32").
			WithMinimum(validate.MinSkip, false).WithDefault(0)).
		RespondsWith(http.StatusOK, spec.NewResponse().WithDescription("OK").WithSchema(ref("SnippetPage"))).
		RespondsWith(http.StatusBadRequest, errorResponse("Validation failed"))

	get := spec.NewOperation("getSnippet").
		WithSummary("Get a snippet by id").
		WithTags("snippets").
		WithProduces("application/json").
		AddParam(spec.PathParam("id").Typed("string", "")).
		RespondsWith(http.StatusOK, spec.NewResponse().WithDescription("OK").WithSchema(ref("Snippet"))).
		RespondsWith(http.StatusBadRequest, errorResponse("Invalid ID format")).
		RespondsWith(http.StatusNotFound, errorResponse("Snippet not found"))

	return &spec.Swagger{
		SwaggerProps: spec.SwaggerProps{
			Swagger: "2.0",
			Info: &spec.Info{InfoProps: spec.InfoProps{
				Title:       "AI Snippet Service",
				Description: "Stores text snippets together with an AI generated summary.",
				Version:     "1.0",
			}},
			Paths: &spec.Paths{Paths: map[string]spec.PathItem{
				"/snippets":      {PathItemProps: spec.PathItemProps{Get: list, Post: create}},
				"/snippets/{id}": {PathItemProps: spec.PathItemProps{Get: get}},
			}},
			Definitions: spec.Definitions{
				"Snippet":       *snippet,
				"SnippetPage":   *page,
				"Violation":     *violation,
				"ErrorResponse": *errResp,
			},
		},
	}
}

// DocsHandler serves the Swagger document.
func DocsHandler() http.HandlerFunc {
	doc := SwaggerDoc()
	return func(w http.ResponseWriter, r *http.Request) {
		respond.WriteJSON(w, http.StatusOK, doc)
	}
}
