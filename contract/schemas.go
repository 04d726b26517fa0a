package contract

// Schema catalog for every payload shape the wallet service exchanges.
// Shared sub-shapes (currency clip, transaction) are registered once and
// referenced from their containers so a change propagates everywhere.

const (
	// SchemaUserToken validates the login response.
	SchemaUserToken = "userToken"
	// SchemaUserInfo validates the user profile response.
	SchemaUserInfo = "userInfo"
	// SchemaWallet validates a wallet snapshot.
	SchemaWallet = "wallet"
	// SchemaCurrencyClip validates a single currency clip.
	SchemaCurrencyClip = "currencyClip"
	// SchemaTransactionRequest validates a create-transaction request body.
	SchemaTransactionRequest = "transactionRequest"
	// SchemaTransaction validates a full transaction object.
	SchemaTransaction = "transaction"
	// SchemaTransactionResponse validates the create-transaction response.
	SchemaTransactionResponse = "transactionResponse"
	// SchemaTransactionList validates a transaction list page.
	SchemaTransactionList = "transactionList"
	// SchemaHealth validates the health endpoint response.
	SchemaHealth = "health"
	// SchemaWakeup validates the warm-up endpoint response.
	SchemaWakeup = "wakeup"
	// SchemaError validates an error response body.
	SchemaError = "error"
)

// refBase is the synthetic URI prefix under which shared sub-schemas are
// registered with the loader. It is never fetched.
const refBase = "walletprobe://schemas/"

var currencyClipSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"currency":         map[string]any{"type": "string", "pattern": "^[A-Z]{3}$"},
		"balance":          map[string]any{"type": "number", "minimum": 0},
		"lastTransaction":  map[string]any{"type": "string", "format": "date-time"},
		"transactionCount": map[string]any{"type": "integer", "minimum": 0},
	},
	"required":             []any{"currency", "balance", "lastTransaction", "transactionCount"},
	"additionalProperties": false,
}

var transactionSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"transactionId": map[string]any{"type": "string", "format": "uuid"},
		"currency":      map[string]any{"type": "string", "pattern": "^[A-Z]{3}$"},
		"amount":        map[string]any{"type": "number", "minimum": 0.01},
		"type":          map[string]any{"type": "string", "enum": []any{"credit", "debit"}},
		"status":        map[string]any{"type": "string", "enum": []any{"pending", "finished"}},
		"outcome":       map[string]any{"type": []any{"string", "null"}, "enum": []any{"approved", "denied", nil}},
		"createdAt":     map[string]any{"type": "string", "format": "date-time"},
		"updatedAt":     map[string]any{"type": "string", "format": "date-time"},
	},
	"required":             []any{"transactionId", "currency", "amount", "type", "status", "createdAt", "updatedAt"},
	"additionalProperties": false,
}

// catalog maps schema names to their definitions. Schemas are closed
// (additionalProperties false) unless the remote service is known to attach
// free-form fields, as the wakeup and error shapes do.
var catalog = map[string]map[string]any{
	SchemaUserToken: {
		"type": "object",
		"properties": map[string]any{
			"token":        map[string]any{"type": "string", "minLength": 10},
			"refreshToken": map[string]any{"type": "string", "minLength": 10},
			"expiry":       map[string]any{"type": "string", "format": "date-time"},
			"userId":       map[string]any{"type": "string", "format": "uuid"},
		},
		"required":             []any{"token", "refreshToken", "expiry", "userId"},
		"additionalProperties": false,
	},

	SchemaUserInfo: {
		"type": "object",
		"properties": map[string]any{
			"walletId": map[string]any{"type": "string", "format": "uuid"},
			"name":     map[string]any{"type": []any{"string", "null"}},
			"locale":   map[string]any{"type": []any{"string", "null"}},
			"region":   map[string]any{"type": []any{"string", "null"}},
			"timezone": map[string]any{"type": []any{"string", "null"}},
			"email":    map[string]any{"type": "string", "format": "email"},
		},
		"required":             []any{"walletId", "email"},
		"additionalProperties": false,
	},

	SchemaCurrencyClip: currencyClipSchema,

	SchemaWallet: {
		"type": "object",
		"properties": map[string]any{
			"walletId": map[string]any{"type": "string", "format": "uuid"},
			"currencyClips": map[string]any{
				"type":  "array",
				"items": map[string]any{"$ref": refBase + SchemaCurrencyClip},
			},
			"createdAt": map[string]any{"type": "string", "format": "date-time"},
			"updatedAt": map[string]any{"type": "string", "format": "date-time"},
		},
		"required":             []any{"walletId", "currencyClips", "createdAt", "updatedAt"},
		"additionalProperties": false,
	},

	SchemaTransactionRequest: {
		"type": "object",
		"properties": map[string]any{
			"currency": map[string]any{"type": "string", "pattern": "^[A-Z]{3}$"},
			"amount":   map[string]any{"type": "number", "minimum": 0.01, "maximum": 1000000},
			"type":     map[string]any{"type": "string", "enum": []any{"credit", "debit"}},
		},
		"required":             []any{"currency", "amount", "type"},
		"additionalProperties": false,
	},

	SchemaTransaction: transactionSchema,

	SchemaTransactionResponse: {
		"type": "object",
		"properties": map[string]any{
			"transactionId": map[string]any{"type": "string", "format": "uuid"},
			"status":        map[string]any{"type": "string", "enum": []any{"pending", "finished"}},
			"outcome":       map[string]any{"type": []any{"string", "null"}, "enum": []any{"approved", "denied", nil}},
			"createdAt":     map[string]any{"type": "string", "format": "date-time"},
			"updatedAt":     map[string]any{"type": "string", "format": "date-time"},
		},
		"required":             []any{"transactionId", "status", "createdAt", "updatedAt"},
		"additionalProperties": false,
	},

	SchemaTransactionList: {
		"type": "object",
		"properties": map[string]any{
			"transactions": map[string]any{
				"type":  "array",
				"items": map[string]any{"$ref": refBase + SchemaTransaction},
			},
			"totalCount":  map[string]any{"type": "integer", "minimum": 0},
			"currentPage": map[string]any{"type": "integer", "minimum": 1},
			"totalPages":  map[string]any{"type": "integer", "minimum": 0},
		},
		"required":             []any{"transactions", "totalCount", "currentPage", "totalPages"},
		"additionalProperties": false,
	},

	SchemaHealth: {
		"type": "object",
		"properties": map[string]any{
			"status":    map[string]any{"type": "string", "enum": []any{"healthy", "unhealthy"}},
			"timestamp": map[string]any{"type": "string", "format": "date-time"},
			"database":  map[string]any{"type": "string", "enum": []any{"connected", "disconnected"}},
		},
		"required":             []any{"status", "timestamp", "database"},
		"additionalProperties": false,
	},

	SchemaWakeup: {
		"type": "object",
		"properties": map[string]any{
			"status":    map[string]any{"type": "string", "enum": []any{"awake"}},
			"message":   map[string]any{"type": "string"},
			"timestamp": map[string]any{"type": "string", "format": "date-time"},
			"error":     map[string]any{"type": "string"},
		},
		"required":             []any{"status", "message", "timestamp"},
		"additionalProperties": true,
	},

	SchemaError: {
		"type": "object",
		"properties": map[string]any{
			"detail":      map[string]any{"type": "string"},
			"message":     map[string]any{"type": "string"},
			"error":       map[string]any{"type": "string"},
			"status_code": map[string]any{"type": "integer"},
		},
		// The service always describes the failure in one of these fields.
		"anyOf": []any{
			map[string]any{"required": []any{"detail"}},
			map[string]any{"required": []any{"message"}},
			map[string]any{"required": []any{"error"}},
		},
		"additionalProperties": true,
	},
}

// sharedSchemas are the sub-shapes referenced by container schemas. They are
// registered with every compilation so $ref resolution always finds them.
var sharedSchemas = map[string]map[string]any{
	SchemaCurrencyClip: currencyClipSchema,
	SchemaTransaction:  transactionSchema,
}
