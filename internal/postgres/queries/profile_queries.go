package queries

const profileColumns = `id, email, full_name, avatar_url, role::text, created_at, updated_at`

const (
	QueryGetProfileByID = `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`

	QueryGetProfileByEmail = `SELECT ` + profileColumns + ` FROM profiles WHERE lower(email) = lower($1) ORDER BY created_at LIMIT 1`

	QueryInsertProfile = `
		INSERT INTO profiles (id, email, full_name, avatar_url, role)
		VALUES ($1, $2, $3, $4, COALESCE($5::text, 'business_manager')::user_role)
		RETURNING ` + profileColumns

	QueryUpdateProfile = `
		UPDATE profiles SET
			email      = COALESCE($2, email),
			full_name  = COALESCE($3, full_name),
			avatar_url = COALESCE($4, avatar_url),
			role       = COALESCE($5::text::user_role, role),
			updated_at = now()
		WHERE id = $1
		RETURNING ` + profileColumns
)

const businessColumns = `id, name, owner_id, created_at, updated_at`

const (
	QueryGetBusinessByID = `SELECT ` + businessColumns + ` FROM business_accounts WHERE id = $1`

	QueryListBusinessesByOwner = `SELECT ` + businessColumns + ` FROM business_accounts WHERE owner_id = $1 ORDER BY created_at`

	QueryInsertBusiness = `
		INSERT INTO business_accounts (name, owner_id)
		VALUES ($1, $2)
		RETURNING ` + businessColumns

	QueryUpdateBusiness = `
		UPDATE business_accounts SET
			name       = COALESCE($2, name),
			updated_at = now()
		WHERE id = $1
		RETURNING ` + businessColumns
)
