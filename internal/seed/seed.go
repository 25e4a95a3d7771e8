// Package seed builds the demo organization loaded into an empty memory store.
package seed

import (
	_ "embed"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/propease_crm/internal/core/domain"
	"github.com/SscSPs/propease_crm/internal/repositories/memory"
	"github.com/SscSPs/propease_crm/internal/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed demo.yaml
var demoYAML []byte

// SystemActor is recorded as creator of seeded rows.
const SystemActor = "system"

// Document mirrors the YAML layout of a seed file.
type Document struct {
	Organization struct {
		Name    string `yaml:"name"`
		Email   string `yaml:"email"`
		Address string `yaml:"address"`
	} `yaml:"organization"`
	Users         []UserSeed         `yaml:"users"`
	Projects      []ProjectSeed      `yaml:"projects"`
	Clients       []ClientSeed       `yaml:"clients"`
	Enquiries     []EnquirySeed      `yaml:"enquiries"`
	Bookings      []BookingSeed      `yaml:"bookings"`
	Notifications []NotificationSeed `yaml:"notifications"`
}

type UserSeed struct {
	Username     string `yaml:"username"`
	Password     string `yaml:"password"`
	Name         string `yaml:"name"`
	Email        string `yaml:"email"`
	MobileNumber string `yaml:"mobileNumber"`
	Role         string `yaml:"role"`
}

type ProjectSeed struct {
	ProjectName    string `yaml:"projectName"`
	Status         string `yaml:"status"`
	Progress       int    `yaml:"progress"`
	StartDate      string `yaml:"startDate"`
	CompletionDate string `yaml:"completionDate"`
	MahareraNo     string `yaml:"mahareraNo"`
	ProjectAddress string `yaml:"projectAddress"`
	Wings          []struct {
		WingName string      `yaml:"wingName"`
		Floors   []FloorSeed `yaml:"floors"`
	} `yaml:"wings"`
	Disbursements []struct {
		Title       string `yaml:"title"`
		Description string `yaml:"description"`
		Percentage  string `yaml:"percentage"`
	} `yaml:"disbursements"`
	BankDetails []struct {
		BankName      string `yaml:"bankName"`
		BranchName    string `yaml:"branchName"`
		ContactPerson string `yaml:"contactPerson"`
		ContactNumber string `yaml:"contactNumber"`
		IFSC          string `yaml:"ifsc"`
	} `yaml:"bankDetails"`
	Amenities []string `yaml:"amenities"`
}

type FloorSeed struct {
	FloorNo      int    `yaml:"floorNo"`
	FloorName    string `yaml:"floorName"`
	PropertyType string `yaml:"propertyType"`
	Area         string `yaml:"area"`
	Flats        int    `yaml:"flats"`
}

type ClientSeed struct {
	ClientName   string `yaml:"clientName"`
	Email        string `yaml:"email"`
	MobileNumber string `yaml:"mobileNumber"`
	DOB          string `yaml:"dob"`
	City         string `yaml:"city"`
	Address      string `yaml:"address"`
	Occupation   string `yaml:"occupation"`
	Company      string `yaml:"company"`
	PanNo        string `yaml:"panNo"`
	AadharNo     string `yaml:"aadharNo"`
}

type EnquirySeed struct {
	Project        string `yaml:"project"`
	Client         string `yaml:"client"`
	Unit           string `yaml:"unit"`
	Budget         string `yaml:"budget"`
	Reference      string `yaml:"reference"`
	ReferenceName  string `yaml:"referenceName"`
	Remark         string `yaml:"remark"`
	Agent          string `yaml:"agent"`
	FollowUpInDays int    `yaml:"followUpInDays"`
}

type BookingSeed struct {
	Project         string `yaml:"project"`
	Client          string `yaml:"client"`
	Unit            string `yaml:"unit"`
	BookingAmount   string `yaml:"bookingAmount"`
	AgreementAmount string `yaml:"agreementAmount"`
	BookingDate     string `yaml:"bookingDate"`
	ChequeNo        string `yaml:"chequeNo"`
	Agent           string `yaml:"agent"`
}

type NotificationSeed struct {
	Type    string `yaml:"type"`
	Title   string `yaml:"title"`
	Message string `yaml:"message"`
}

// Parse decodes a seed document.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse seed yaml: %w", err)
	}
	return &doc, nil
}

// Demo returns the embedded demo organization.
func Demo() (*Document, error) {
	return Parse(demoYAML)
}

// builder resolves the cross references of a Document while it is turned
// into store rows.
type builder struct {
	now     time.Time
	today   time.Time
	snap    *memory.Snapshot
	users   map[string]domain.User
	clients map[string]domain.Client
	// units is keyed by "<project name>/<unit number>".
	units    map[string]domain.Flat
	projects map[string]domain.Project
}

// Build converts doc into a snapshot ready for memory.Store.Import. Flat
// statuses are derived from the seeded bookings.
func Build(doc *Document, now time.Time, loc *time.Location) (*memory.Snapshot, error) {
	b := &builder{
		now:      now,
		today:    domain.CalendarDate(now, loc),
		snap:     &memory.Snapshot{},
		users:    map[string]domain.User{},
		clients:  map[string]domain.Client{},
		units:    map[string]domain.Flat{},
		projects: map[string]domain.Project{},
	}
	steps := []func(*Document) error{b.addUsers, b.addProjects, b.addClients, b.addBookings, b.addEnquiries, b.addNotifications}
	for _, step := range steps {
		if err := step(doc); err != nil {
			return nil, err
		}
	}
	b.snap.Flats = b.snap.Flats[:0]
	for _, f := range b.units {
		b.snap.Flats = append(b.snap.Flats, f)
	}
	return b.snap, nil
}

func (b *builder) audit() domain.AuditFields {
	return domain.NewAuditFields(SystemActor, b.now)
}

func (b *builder) addUsers(doc *Document) error {
	for _, u := range doc.Users {
		hash, err := utils.HashPassword(u.Password)
		if err != nil {
			return fmt.Errorf("failed to hash seed password for %s: %w", u.Username, err)
		}
		user := domain.User{
			UserID:       uuid.NewString(),
			Username:     u.Username,
			Email:        u.Email,
			Name:         u.Name,
			MobileNumber: u.MobileNumber,
			Role:         domain.Role(u.Role),
			PasswordHash: hash,
			AuditFields:  b.audit(),
		}
		if !user.Role.IsValid() {
			return fmt.Errorf("seed user %s has unknown role %q", u.Username, u.Role)
		}
		b.users[strings.ToLower(u.Username)] = user
		b.snap.Users = append(b.snap.Users, user)
	}
	return nil
}

func optionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	d, err := domain.ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (b *builder) addProjects(doc *Document) error {
	for _, p := range doc.Projects {
		start, err := optionalDate(p.StartDate)
		if err != nil {
			return fmt.Errorf("project %s start date: %w", p.ProjectName, err)
		}
		end, err := optionalDate(p.CompletionDate)
		if err != nil {
			return fmt.Errorf("project %s completion date: %w", p.ProjectName, err)
		}
		project := domain.Project{
			ProjectID:      uuid.NewString(),
			ProjectName:    p.ProjectName,
			Status:         domain.ProjectStatus(p.Status),
			Progress:       p.Progress,
			StartDate:      start,
			CompletionDate: end,
			MahareraNo:     p.MahareraNo,
			ProjectAddress: p.ProjectAddress,
			AuditFields:    b.audit(),
		}
		b.projects[p.ProjectName] = project
		b.snap.Projects = append(b.snap.Projects, project)

		for _, w := range p.Wings {
			wing := domain.Wing{
				WingID:      uuid.NewString(),
				ProjectID:   project.ProjectID,
				WingName:    w.WingName,
				NoOfFloors:  len(w.Floors),
				AuditFields: b.audit(),
			}
			for _, f := range w.Floors {
				area, err := decimal.NewFromString(f.Area)
				if err != nil {
					return fmt.Errorf("floor %s/%s area: %w", w.WingName, f.FloorName, err)
				}
				floor := domain.Floor{
					FloorID:      uuid.NewString(),
					ProjectID:    project.ProjectID,
					WingID:       wing.WingID,
					FloorNo:      f.FloorNo,
					FloorName:    f.FloorName,
					PropertyType: f.PropertyType,
					Area:         area,
					Quantity:     f.Flats,
					AuditFields:  b.audit(),
				}
				b.snap.Floors = append(b.snap.Floors, floor)
				for n := 1; n <= f.Flats; n++ {
					bhk := "2BHK"
					if n > 2 {
						bhk = "3BHK"
					}
					flat := domain.Flat{
						PropertyID:  uuid.NewString(),
						ProjectID:   project.ProjectID,
						WingID:      wing.WingID,
						FloorID:     floor.FloorID,
						UnitNumber:  domain.UnitNumber(wing.WingName, f.FloorNo, n),
						Status:      domain.UnitStatusVacant,
						Area:        area,
						BHK:         bhk,
						AuditFields: b.audit(),
					}
					b.units[p.ProjectName+"/"+flat.UnitNumber] = flat
					wing.NoOfProperties++
				}
			}
			b.snap.Wings = append(b.snap.Wings, wing)
		}

		for _, d := range p.Disbursements {
			pct, err := decimal.NewFromString(d.Percentage)
			if err != nil {
				return fmt.Errorf("disbursement %s percentage: %w", d.Title, err)
			}
			b.snap.Disbursements = append(b.snap.Disbursements, domain.Disbursement{
				DisbursementID:    uuid.NewString(),
				ProjectID:         project.ProjectID,
				DisbursementTitle: d.Title,
				Description:       d.Description,
				Percentage:        pct,
				AuditFields:       b.audit(),
			})
		}
		for _, bd := range p.BankDetails {
			b.snap.BankDetails = append(b.snap.BankDetails, domain.BankDetail{
				BankDetailID:  uuid.NewString(),
				ProjectID:     project.ProjectID,
				BankName:      bd.BankName,
				BranchName:    bd.BranchName,
				ContactPerson: bd.ContactPerson,
				ContactNumber: bd.ContactNumber,
				IFSC:          bd.IFSC,
				AuditFields:   b.audit(),
			})
		}
		for _, name := range p.Amenities {
			b.snap.Amenities = append(b.snap.Amenities, domain.Amenity{
				AmenityID:   uuid.NewString(),
				ProjectID:   project.ProjectID,
				Name:        name,
				AuditFields: b.audit(),
			})
		}
	}
	return nil
}

func (b *builder) addClients(doc *Document) error {
	for _, c := range doc.Clients {
		dob, err := optionalDate(c.DOB)
		if err != nil {
			return fmt.Errorf("client %s dob: %w", c.ClientName, err)
		}
		client := domain.Client{
			ClientID:     uuid.NewString(),
			ClientName:   c.ClientName,
			Email:        c.Email,
			MobileNumber: c.MobileNumber,
			DOB:          dob,
			City:         c.City,
			Address:      c.Address,
			Occupation:   c.Occupation,
			Company:      c.Company,
			PanNo:        c.PanNo,
			AadharNo:     c.AadharNo,
			AuditFields:  b.audit(),
		}
		b.clients[strings.ToLower(c.Email)] = client
		b.snap.Clients = append(b.snap.Clients, client)
	}
	return nil
}

func (b *builder) lookup(project, unit, client, agent string) (domain.Flat, domain.Client, domain.User, error) {
	flat, ok := b.units[project+"/"+unit]
	if !ok && unit != "" {
		return domain.Flat{}, domain.Client{}, domain.User{}, fmt.Errorf("seed references unknown unit %s/%s", project, unit)
	}
	c, ok := b.clients[strings.ToLower(client)]
	if !ok {
		return domain.Flat{}, domain.Client{}, domain.User{}, fmt.Errorf("seed references unknown client %s", client)
	}
	u, ok := b.users[strings.ToLower(agent)]
	if !ok {
		return domain.Flat{}, domain.Client{}, domain.User{}, fmt.Errorf("seed references unknown agent %s", agent)
	}
	return flat, c, u, nil
}

func (b *builder) addBookings(doc *Document) error {
	for _, s := range doc.Bookings {
		flat, client, agent, err := b.lookup(s.Project, s.Unit, s.Client, s.Agent)
		if err != nil {
			return err
		}
		bookingAmount, err := decimal.NewFromString(s.BookingAmount)
		if err != nil {
			return fmt.Errorf("booking %s amount: %w", s.Unit, err)
		}
		agreementAmount, err := decimal.NewFromString(s.AgreementAmount)
		if err != nil {
			return fmt.Errorf("booking %s agreement amount: %w", s.Unit, err)
		}
		bookingDate, err := domain.ParseDate(s.BookingDate)
		if err != nil {
			return fmt.Errorf("booking %s date: %w", s.Unit, err)
		}
		booking := domain.Booking{
			BookingID:       uuid.NewString(),
			ProjectID:       flat.ProjectID,
			ClientID:        client.ClientID,
			PropertyID:      flat.PropertyID,
			BookingAmount:   bookingAmount,
			AgreementAmount: agreementAmount,
			GSTPercentage:   domain.DefaultGSTPercentage,
			BookingDate:     bookingDate,
			ChequeNo:        s.ChequeNo,
			AuditFields:     domain.NewAuditFields(agent.UserID, b.now),
		}
		b.snap.Bookings = append(b.snap.Bookings, booking)
		flat.Status = domain.DeriveUnitStatus([]domain.Booking{booking})
		b.units[s.Project+"/"+s.Unit] = flat
		b.activity(agent, "Booked", "Booking", booking.BookingID)
	}
	return nil
}

func (b *builder) addEnquiries(doc *Document) error {
	for _, s := range doc.Enquiries {
		flat, client, agent, err := b.lookup(s.Project, s.Unit, s.Client, s.Agent)
		if err != nil {
			return err
		}
		project, ok := b.projects[s.Project]
		if !ok {
			return fmt.Errorf("seed references unknown project %s", s.Project)
		}
		audit := domain.NewAuditFields(agent.UserID, b.now)
		enquiry := domain.Enquiry{
			EnquiryID:     uuid.NewString(),
			ProjectID:     project.ProjectID,
			ClientID:      client.ClientID,
			PropertyID:    flat.PropertyID,
			Budget:        s.Budget,
			Reference:     s.Reference,
			ReferenceName: s.ReferenceName,
			Status:        domain.EnquiryStatusOngoing,
			AuditFields:   audit,
		}
		b.snap.Enquiries = append(b.snap.Enquiries, enquiry)
		if s.Remark != "" {
			b.snap.EnquiryRemarks = append(b.snap.EnquiryRemarks, domain.EnquiryRemark{
				RemarkID:   uuid.NewString(),
				EnquiryID:  enquiry.EnquiryID,
				Body:       s.Remark,
				AuthorID:   agent.UserID,
				AuthorName: agent.Name,
				CreatedAt:  b.now,
			})
		}
		b.snap.FollowUps = append(b.snap.FollowUps, domain.FollowUp{
			FollowUpID:   uuid.NewString(),
			EnquiryID:    enquiry.EnquiryID,
			FollowUpDate: b.today.AddDate(0, 0, s.FollowUpInDays),
			FollowUpTime: domain.DefaultFollowUpTime,
			Status:       domain.FollowUpStatusPending,
			Notes:        domain.InitialFollowUpNotes,
			AgentName:    agent.Name,
			AgentID:      agent.UserID,
			AuditFields:  audit,
		})
		b.activity(agent, "Created", "Enquiry", enquiry.EnquiryID)
	}
	return nil
}

func (b *builder) addNotifications(doc *Document) error {
	for i, n := range doc.Notifications {
		b.snap.Notifications = append(b.snap.Notifications, domain.Notification{
			NotificationID: uuid.NewString(),
			Type:           domain.NotificationType(n.Type),
			Title:          n.Title,
			Message:        n.Message,
			CreatedAt:      b.now.Add(-time.Duration(i) * time.Hour),
		})
	}
	return nil
}

func (b *builder) activity(actor domain.User, action, entityType, entityID string) {
	b.snap.ActivityLog = append(b.snap.ActivityLog, domain.ActivityLog{
		ActivityID: uuid.NewString(),
		UserID:     actor.UserID,
		UserName:   actor.Name,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Timestamp:  b.now,
	})
}
