package appointment

import (
	"strings"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type ClientType string

const (
	ClientRegistered ClientType = "registered"
	ClientSporadic   ClientType = "sporadic"
	ClientEvent      ClientType = "event"
)

// ClientIdentification is one of Registered, Sporadic or Event.
type ClientIdentification interface {
	Type() ClientType
	applyTo(ap *models.Appointment)
}

type Registered struct {
	ClientID uint
}

type Sporadic struct {
	Name  string
	Phone string
}

type Event struct {
	Title string
}

func (Registered) Type() ClientType { return ClientRegistered }
func (Sporadic) Type() ClientType   { return ClientSporadic }
func (Event) Type() ClientType      { return ClientEvent }

func (r Registered) applyTo(ap *models.Appointment) {
	id := r.ClientID
	ap.ClientID = &id
}

func (s Sporadic) applyTo(ap *models.Appointment) {
	ap.SporadicName = s.Name
	ap.SporadicTel = s.Phone
}

func (e Event) applyTo(ap *models.Appointment) {
	ap.EventTitle = e.Title
}

// NewClientIdentification validates raw form fields for the given discriminator.
func NewClientIdentification(
	clientType string,
	clientID uint,
	name string,
	phone string,
	title string,
) (ClientIdentification, error) {

	switch ClientType(strings.ToLower(strings.TrimSpace(clientType))) {
	case ClientRegistered, "":
		if clientID == 0 {
			return nil, httperr.ErrBusiness("client_required")
		}
		return Registered{ClientID: clientID}, nil

	case ClientSporadic:
		name, phone = strings.TrimSpace(name), strings.TrimSpace(phone)
		if name == "" || phone == "" {
			return nil, httperr.ErrBusiness("sporadic_client_required")
		}
		return Sporadic{Name: name, Phone: phone}, nil

	case ClientEvent:
		title = strings.TrimSpace(title)
		if title == "" {
			return nil, httperr.ErrBusiness("event_title_required")
		}
		return Event{Title: title}, nil
	}

	return nil, httperr.ErrBusiness("invalid_client_type")
}

// SetClient clears every identification column and writes id's mode.
func SetClient(ap *models.Appointment, id ClientIdentification) {
	ap.ClientID = nil
	ap.Client = nil
	ap.SporadicName = ""
	ap.SporadicTel = ""
	ap.EventTitle = ""

	ap.ClientType = string(id.Type())
	id.applyTo(ap)
}

// ClientOf reads the identification back, failing when the row breaks the
// one-mode-only invariant.
func ClientOf(ap *models.Appointment) (ClientIdentification, error) {
	set := 0
	if ap.ClientID != nil {
		set++
	}
	if ap.SporadicName != "" || ap.SporadicTel != "" {
		set++
	}
	if ap.EventTitle != "" {
		set++
	}
	if set != 1 {
		return nil, httperr.ErrBusiness("invalid_client_identification")
	}

	var id ClientIdentification
	switch {
	case ap.ClientID != nil:
		id = Registered{ClientID: *ap.ClientID}
	case ap.EventTitle != "":
		id = Event{Title: ap.EventTitle}
	default:
		id = Sporadic{Name: ap.SporadicName, Phone: ap.SporadicTel}
	}

	if string(id.Type()) != ap.ClientType {
		return nil, httperr.ErrBusiness("invalid_client_identification")
	}
	return id, nil
}

// DisplayName is what lists show in the "client" column.
func DisplayName(ap *models.Appointment) string {
	switch ClientType(ap.ClientType) {
	case ClientSporadic:
		return ap.SporadicName
	case ClientEvent:
		return ap.EventTitle
	}
	if ap.Client != nil {
		return ap.Client.Name
	}
	return ""
}
