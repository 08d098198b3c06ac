package queries

const imageColumns = `id, business_id, prompt, style, image_url, storage_path, created_at`

const (
	QueryListImagesByBusiness = `SELECT ` + imageColumns + ` FROM generated_images WHERE business_id = $1 ORDER BY created_at DESC, id DESC`

	QueryInsertImage = `
		INSERT INTO generated_images (business_id, prompt, style, image_url, storage_path)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + imageColumns
)

const transactionColumns = `id, business_id, date, description, amount::float8, type, category, created_at, updated_at`

const (
	QueryListTransactions = `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE business_id = $1 AND ($2::text IS NULL OR type = $2)
		ORDER BY date DESC, created_at DESC`

	QueryInsertTransaction = `
		INSERT INTO transactions (business_id, date, description, amount, type, category)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + transactionColumns

	QueryUpdateTransaction = `
		UPDATE transactions SET
			date        = COALESCE($2, date),
			description = COALESCE($3, description),
			amount      = COALESCE($4, amount),
			type        = COALESCE($5, type),
			category    = COALESCE($6, category),
			updated_at  = now()
		WHERE id = $1
		RETURNING ` + transactionColumns

	QueryDeleteTransaction = `DELETE FROM transactions WHERE id = $1`
)

const documentColumns = `id, business_id, title, content, tags, created_at, updated_at`

const (
	QueryListDocuments = `
		SELECT ` + documentColumns + `
		FROM documents
		WHERE business_id = $1
		  AND ($2::text IS NULL
		    OR title ILIKE $3::text ESCAPE '\'
		    OR content ILIKE $3::text ESCAPE '\'
		    OR $2 = ANY(tags))
		ORDER BY updated_at DESC, id DESC`

	QueryInsertDocument = `
		INSERT INTO documents (business_id, title, content, tags)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + documentColumns

	QueryUpdateDocument = `
		UPDATE documents SET
			title      = COALESCE($2, title),
			content    = COALESCE($3, content),
			tags       = COALESCE($4, tags),
			updated_at = now()
		WHERE id = $1
		RETURNING ` + documentColumns

	QueryDeleteDocument = `DELETE FROM documents WHERE id = $1`

	QueryCountDocuments = `SELECT COUNT(*) FROM documents WHERE business_id = $1`
)

const contactColumns = `id, business_id, name, email, phone, company, status, value::float8, created_at`

const (
	QueryListContacts = `
		SELECT ` + contactColumns + `
		FROM contacts
		WHERE business_id = $1 AND ($2::text IS NULL OR status = $2)
		ORDER BY created_at DESC, id DESC`

	QueryInsertContact = `
		INSERT INTO contacts (business_id, name, email, phone, company, status, value)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + contactColumns

	QueryUpdateContact = `
		UPDATE contacts SET
			name    = COALESCE($2, name),
			email   = COALESCE($3, email),
			phone   = COALESCE($4, phone),
			company = COALESCE($5, company),
			status  = COALESCE($6, status),
			value   = COALESCE($7, value)
		WHERE id = $1
		RETURNING ` + contactColumns

	QueryDeleteContact = `DELETE FROM contacts WHERE id = $1`
)
