package dynamo

// DynamoDB attribute names used in update expressions across all repos.
// Using constants prevents silent runtime bugs caused by key typos.
const (
	fieldEnable           = "enable"
	fieldUpdatedAt        = "updated_at"
	fieldRefreshToken     = "refresh_token"
	fieldRefreshExpiresAt = "refresh_expires_at"
	fieldTitle            = "title"
	fieldContent          = "content"
	fieldType             = "type"
	fieldStatus           = "status"
	fieldPasswordHash     = "password_hash"
	fieldPhone            = "phone_number"
	fieldSortKey          = "sort_key"
)

// feedAll is the constant partition value that lets a GSI list every item newest first.
const feedAll = "all"
