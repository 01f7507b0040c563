package types

import (
	"time"

	"github.com/dojodesk/dojodesk/internal/models"
)

const dateLayout = "2006-01-02"

type MemberResponse struct {
	ID              uint    `json:"id"`
	Name            string  `json:"name"`
	Email           string  `json:"email"`
	Address         string  `json:"address,omitempty"`
	BirthDate       *string `json:"birthDate,omitempty"`
	JoinDate        string  `json:"joinDate"`
	WaiverSigned    bool    `json:"waiverSigned"`
	BeltLevel       string  `json:"beltLevel"`
	ClassesAttended uint    `json:"classesAttended"`
}

type AdminResponse struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
}

func NewMemberResponse(member models.Member) MemberResponse {
	response := MemberResponse{
		ID:              member.ID,
		Name:            member.Name,
		Email:           member.Email,
		Address:         member.Address,
		JoinDate:        time.Time(member.JoinDate).Format(dateLayout),
		WaiverSigned:    member.WaiverSigned,
		BeltLevel:       member.BeltLevel,
		ClassesAttended: member.ClassesAttended,
	}

	if member.BirthDate != nil {
		birthDate := time.Time(*member.BirthDate).Format(dateLayout)
		response.BirthDate = &birthDate
	}

	return response
}

func NewMemberResponses(members []models.Member) []MemberResponse {
	responses := make([]MemberResponse, 0, len(members))

	for _, member := range members {
		responses = append(responses, NewMemberResponse(member))
	}

	return responses
}
