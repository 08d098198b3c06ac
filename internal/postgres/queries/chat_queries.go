package queries

const groupColumns = `g.id, g.name, g.description, g.business_id, g.created_by, g.created_at, g.updated_at`

const (
	QueryGetGroupByID = `SELECT ` + groupColumns + ` FROM chat_groups g WHERE g.id = $1`

	QueryListGroupsByBusiness = `
		SELECT ` + groupColumns + `
		FROM chat_groups g
		WHERE g.business_id = $1
		ORDER BY g.created_at DESC, g.id DESC`

	// группы бизнеса, где состоит пользователь, с числом участников
	QueryListGroupsForMember = `
		SELECT ` + groupColumns + `,
		       (SELECT COUNT(*) FROM group_members c WHERE c.group_id = g.id) AS member_count,
		       m.is_admin
		FROM chat_groups g
		JOIN group_members m ON m.group_id = g.id AND m.user_id = $2
		WHERE g.business_id = $1
		ORDER BY g.created_at DESC, g.id DESC`

	QueryInsertGroup = `
		INSERT INTO chat_groups AS g (name, description, business_id, created_by)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + groupColumns

	QueryUpdateGroup = `
		UPDATE chat_groups AS g SET
			name        = COALESCE($2, g.name),
			description = COALESCE($3, g.description),
			updated_at  = now()
		WHERE g.id = $1
		RETURNING ` + groupColumns
)

const memberColumns = `id, group_id, user_id, joined_at, is_admin`

const (
	QueryListMembers = `SELECT ` + memberColumns + ` FROM group_members WHERE group_id = $1 ORDER BY joined_at, id`

	QueryGetMember = `SELECT ` + memberColumns + ` FROM group_members WHERE group_id = $1 AND user_id = $2`

	QueryInsertMember = `
		INSERT INTO group_members (group_id, user_id, is_admin)
		VALUES ($1, $2, $3)
		RETURNING ` + memberColumns

	QueryUpdateMemberAdmin = `
		UPDATE group_members SET is_admin = $3
		WHERE group_id = $1 AND user_id = $2
		RETURNING ` + memberColumns

	QueryDeleteMember = `DELETE FROM group_members WHERE group_id = $1 AND user_id = $2`

	QueryMemberExists = `SELECT EXISTS(SELECT 1 FROM group_members WHERE group_id = $1 AND user_id = $2)`
)

const invitationColumns = `id, group_id, created_by, invitation_code, expires_at, max_uses, current_uses, is_active, created_at`

const (
	QueryGetInvitationByCode = `SELECT ` + invitationColumns + ` FROM group_invitations WHERE invitation_code = $1`

	QueryLockInvitationByCode = QueryGetInvitationByCode + ` FOR UPDATE`

	QueryListInvitationsByGroup = `SELECT ` + invitationColumns + ` FROM group_invitations WHERE group_id = $1 ORDER BY created_at DESC, id DESC`

	QueryInsertInvitation = `
		INSERT INTO group_invitations (group_id, created_by, invitation_code, expires_at, max_uses)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + invitationColumns

	QueryUpdateInvitation = `
		UPDATE group_invitations SET
			is_active  = COALESCE($2, is_active),
			max_uses   = COALESCE($3, max_uses),
			expires_at = COALESCE($4, expires_at)
		WHERE id = $1
		RETURNING ` + invitationColumns

	QueryIncrementInvitationUses = `UPDATE group_invitations SET current_uses = current_uses + 1 WHERE id = $1`

	// сколько приглашений выключил sweep
	QueryDeactivateExpiredInvitations = `
		UPDATE group_invitations SET is_active = false
		WHERE is_active
		  AND ((expires_at IS NOT NULL AND expires_at <= now())
		    OR (max_uses IS NOT NULL AND current_uses >= max_uses))`
)

const messageColumns = `m.id, m.group_id, m.user_id, m.content, m.message_type, m.file_url, m.file_name, m.reply_to, m.created_at, m.updated_at`

const (
	QueryInsertMessage = `
		INSERT INTO chat_messages AS m (group_id, user_id, content, message_type, file_url, file_name, reply_to)
		VALUES ($1, $2, $3, COALESCE($4, 'text'), $5, $6, $7)
		RETURNING ` + messageColumns

	QueryUpdateMessageContent = `
		UPDATE chat_messages AS m SET content = $2, updated_at = now()
		WHERE m.id = $1
		RETURNING ` + messageColumns

	// keyset (created_at, id) DESC, автор подтягивается left join-ом
	QueryListMessages = `
		SELECT ` + messageColumns + `, p.id IS NOT NULL, p.full_name, p.avatar_url
		FROM chat_messages m
		LEFT JOIN profiles p ON p.id = m.user_id
		WHERE m.group_id = $1
		  AND (
		    $2::timestamptz IS NULL
		    OR m.created_at < $2
		    OR (m.created_at = $2 AND m.id < $3::uuid)
		  )
		ORDER BY m.created_at DESC, m.id DESC
		LIMIT $4`
)

const typingColumns = `id, group_id, user_id, last_typing`

const (
	QueryUpsertTyping = `
		INSERT INTO typing_indicators (group_id, user_id, last_typing)
		VALUES ($1, $2, now())
		ON CONFLICT (group_id, user_id) DO UPDATE SET last_typing = EXCLUDED.last_typing
		RETURNING ` + typingColumns

	QueryListActiveTyping = `
		SELECT ` + typingColumns + `
		FROM typing_indicators
		WHERE group_id = $1 AND last_typing > now() - ($2::bigint * INTERVAL '1 millisecond')
		ORDER BY last_typing DESC`

	QueryDeleteTyping = `DELETE FROM typing_indicators WHERE group_id = $1 AND user_id = $2`

	QueryDeleteStaleTyping = `DELETE FROM typing_indicators WHERE last_typing <= now() - ($1::bigint * INTERVAL '1 millisecond')`
)
