package entity

// Actor identifies who triggered an operation. A zero UserID means the system.
type Actor struct {
	UserID    *uint64
	Role      Role
	IPAddress string
}

func SystemActor() Actor {
	return Actor{}
}

func ActorFromUser(user *User, ipAddress string) Actor {
	if user == nil {
		return Actor{IPAddress: ipAddress}
	}
	id := user.ID
	return Actor{UserID: &id, Role: user.Role, IPAddress: ipAddress}
}

func (a Actor) IsSystem() bool {
	return a.UserID == nil
}
