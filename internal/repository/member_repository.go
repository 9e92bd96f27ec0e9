package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/troopdesk/troopdesk-backend/internal/model"
)

const memberColumns = `id, name, group_name, status, age, join_date,
	contact_email, contact_phone, parent_guardian_name, created_at, updated_at`

// MemberRepository handles roster data access.
type MemberRepository struct {
	pool *pgxpool.Pool
}

// NewMemberRepository creates a new MemberRepository.
func NewMemberRepository(pool *pgxpool.Pool) *MemberRepository {
	return &MemberRepository{pool: pool}
}

// List retrieves the members matching filter, ordered by name.
func (r *MemberRepository) List(ctx context.Context, filter model.MemberFilter) ([]model.Member, error) {
	var (
		wheres []string
		args   []any
	)
	if filter.Status != "" {
		args = append(args, filter.Status)
		wheres = append(wheres, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.Group != "" {
		args = append(args, filter.Group)
		wheres = append(wheres, fmt.Sprintf("group_name = $%d", len(args)))
	}

	query := `SELECT ` + memberColumns + ` FROM scouts`
	if len(wheres) > 0 {
		query += " WHERE " + strings.Join(wheres, " AND ")
	}
	query += " ORDER BY name, id"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := []model.Member{}
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// Create inserts a new member.
func (r *MemberRepository) Create(ctx context.Context, m *model.Member) error {
	var joinDate *time.Time
	if m.JoinDate != nil {
		joinDate = &m.JoinDate.Time
	}
	return r.pool.QueryRow(ctx,
		`INSERT INTO scouts (name, group_name, status, age, join_date, contact_email, contact_phone, parent_guardian_name)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at, updated_at`,
		m.Name, m.GroupName, m.Status, m.Age, joinDate, m.ContactEmail, m.ContactPhone, m.ParentGuardianName,
	).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
}

func scanMember(row pgx.Row) (model.Member, error) {
	var (
		m        model.Member
		joinDate *time.Time
	)
	err := row.Scan(&m.ID, &m.Name, &m.GroupName, &m.Status, &m.Age, &joinDate,
		&m.ContactEmail, &m.ContactPhone, &m.ParentGuardianName, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return model.Member{}, err
	}
	if joinDate != nil {
		d := model.DateOf(*joinDate)
		m.JoinDate = &d
	}
	return m, nil
}
