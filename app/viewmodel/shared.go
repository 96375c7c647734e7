package viewmodel

import "github.com/vibast-solutions/ms-go-club/app/entity"

// Shared is attached to every rendered page under the "auth" key.
type Shared struct {
	Auth Auth `json:"auth"`
}

type Auth struct {
	User        *User        `json:"user"`
	Permissions *Permissions `json:"permissions"`
}

type User struct {
	ID     uint64  `json:"id"`
	Name   string  `json:"name"`
	Email  string  `json:"email"`
	Role   string  `json:"role"`
	Avatar *string `json:"avatar"`
	Phone  *string `json:"phone"`
}

type Permissions struct {
	IsAdmin         bool `json:"isAdmin"`
	IsStaff         bool `json:"isStaff"`
	IsMember        bool `json:"isMember"`
	IsNonMember     bool `json:"isNonMember"`
	HasAdminAccess  bool `json:"hasAdminAccess"`
	HasStaffAccess  bool `json:"hasStaffAccess"`
	HasMemberAccess bool `json:"hasMemberAccess"`
}

func Project(user *entity.User) Shared {
	if user == nil {
		return Shared{}
	}

	return Shared{
		Auth: Auth{
			User: &User{
				ID:     user.ID,
				Name:   user.Name,
				Email:  user.Email,
				Role:   user.Role.String(),
				Avatar: user.Avatar,
				Phone:  user.Phone,
			},
			Permissions: &Permissions{
				IsAdmin:         user.Role.IsAdmin(),
				IsStaff:         user.Role.IsStaff(),
				IsMember:        user.Role.IsMember(),
				IsNonMember:     user.Role.IsNonMember(),
				HasAdminAccess:  user.Role.IsAdminLevel(),
				HasStaffAccess:  user.Role.IsStaffLevel(),
				HasMemberAccess: user.Role.IsMemberLevel(),
			},
		},
	}
}
