package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table and column names.
const (
	llmEventsTable = "llm_request_events"
	profileTable   = "user_profiles"

	colID           = "id"
	colSequence     = "sequence"
	colCreatedAt    = "created_at"
	colProvider     = "provider"
	colModel        = "model"
	colPurpose      = "purpose"
	colInputTokens  = "input_tokens"
	colOutputTokens = "output_tokens"
	colLatencyMs    = "latency_ms"
	colSuccess      = "success"
	colErrorMessage = "error_message"
	colRequestBody  = "request_body"
	colResponseBody = "response_body"
	colAge          = "age"
	colUpdatedAt    = "updated_at"
)

// Timestamps are stored as unix milliseconds so scans stay driver neutral.
var (
	LLMRequestEventsTable = func() *schema.Table {
		t := schema.NewTable(llmEventsTable).
			AddPrimary(&schema.Column{Name: colID, Type: field.TypeInt, Increment: true}).
			AddColumn(&schema.Column{Name: colSequence, Type: field.TypeInt64, Unique: true}).
			AddColumn(&schema.Column{Name: colCreatedAt, Type: field.TypeInt64}).
			AddColumn(&schema.Column{Name: colProvider, Type: field.TypeString}).
			AddColumn(&schema.Column{Name: colModel, Type: field.TypeString}).
			AddColumn(&schema.Column{Name: colPurpose, Type: field.TypeString}).
			AddColumn(&schema.Column{Name: colInputTokens, Type: field.TypeInt, Default: 0}).
			AddColumn(&schema.Column{Name: colOutputTokens, Type: field.TypeInt, Default: 0}).
			AddColumn(&schema.Column{Name: colLatencyMs, Type: field.TypeInt64, Default: 0}).
			AddColumn(&schema.Column{Name: colSuccess, Type: field.TypeBool}).
			AddColumn(&schema.Column{Name: colErrorMessage, Type: field.TypeString, Default: ""}).
			AddColumn(&schema.Column{Name: colRequestBody, Type: field.TypeString, Size: 2147483647, Default: ""}).
			AddColumn(&schema.Column{Name: colResponseBody, Type: field.TypeString, Size: 2147483647, Default: ""})
		t.AddIndex("llmrequestevent_purpose", false, []string{colPurpose})
		t.AddIndex("llmrequestevent_created_at", false, []string{colCreatedAt})
		return t
	}()

	// UserProfilesTable holds a single row (id 1).
	UserProfilesTable = schema.NewTable(profileTable).
		AddPrimary(&schema.Column{Name: colID, Type: field.TypeInt}).
		AddColumn(&schema.Column{Name: colAge, Type: field.TypeInt}).
		AddColumn(&schema.Column{Name: colUpdatedAt, Type: field.TypeInt64})

	// Tables is every table the store migrates.
	Tables = []*schema.Table{
		LLMRequestEventsTable,
		UserProfilesTable,
	}
)
