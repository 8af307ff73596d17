package signature

import "maps"

// Data holds the identity and contact fields of a signature owner.
// Every field is always present; an empty string means "not provided".
type Data struct {
	Name     string  `json:"name"`
	Title    string  `json:"title"`
	Company  string  `json:"company"`
	Phone    string  `json:"phone"`
	Email    string  `json:"email"`
	Website  string  `json:"website"`
	Logo     string  `json:"logo"`
	Location string  `json:"location"`
	Socials  Socials `json:"socials"`
}

// Socials maps a platform key to a profile URL or a bare handle.
// Keys outside the known platform set are kept but never rendered.
type Socials map[Platform]string

// Clone returns a deep copy of d. The returned Socials map is never nil.
func (d Data) Clone() Data {
	out := d
	out.Socials = make(Socials, len(d.Socials))
	maps.Copy(out.Socials, d.Socials)
	return out
}

// IsZero reports whether no field carries a value.
func (d Data) IsZero() bool {
	if d.Name != "" || d.Title != "" || d.Company != "" || d.Phone != "" ||
		d.Email != "" || d.Website != "" || d.Logo != "" || d.Location != "" {
		return false
	}
	for _, v := range d.Socials {
		if v != "" {
			return false
		}
	}
	return true
}

// Patch is a partial update of Data. Nil fields are left untouched.
// A key present in Socials overwrites that platform; an empty value clears it.
type Patch struct {
	Name     *string             `json:"name,omitempty"`
	Title    *string             `json:"title,omitempty"`
	Company  *string             `json:"company,omitempty"`
	Phone    *string             `json:"phone,omitempty"`
	Email    *string             `json:"email,omitempty"`
	Website  *string             `json:"website,omitempty"`
	Logo     *string             `json:"logo,omitempty"`
	Location *string             `json:"location,omitempty"`
	Socials  map[Platform]string `json:"socials,omitempty"`
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Name == nil && p.Title == nil && p.Company == nil && p.Phone == nil &&
		p.Email == nil && p.Website == nil && p.Logo == nil && p.Location == nil &&
		len(p.Socials) == 0
}

// Merge applies p on top of a copy of d and returns the result.
// The receiver is never modified.
func (d Data) Merge(p Patch) Data {
	out := d.Clone()
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	set(&out.Name, p.Name)
	set(&out.Title, p.Title)
	set(&out.Company, p.Company)
	set(&out.Phone, p.Phone)
	set(&out.Email, p.Email)
	set(&out.Website, p.Website)
	set(&out.Logo, p.Logo)
	set(&out.Location, p.Location)
	maps.Copy(out.Socials, p.Socials)
	return out
}

// String returns a pointer to s. It keeps patch literals short.
func String(s string) *string {
	return &s
}
