package user

import (
	"time"

	"github.com/google/uuid"
)

// AlwaysNever holds the first onboarding questionnaire, seven 1-5 scale
// answers. Nil means unanswered; completeness requires every field set and
// in range.
type AlwaysNever struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ProfileID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null;column:profile_id" json:"profile_id"`

	MakingPlansPreferSchedule      *int `gorm:"column:making_plans_prefer_schedule" json:"making_plans_prefer_schedule"`
	ThrillSeekingFrequency         *int `gorm:"column:thrill_seeking_frequency" json:"thrill_seeking_frequency"`
	AnalyzeVsDistractWhenStressed  *int `gorm:"column:analyze_vs_distract_when_stressed" json:"analyze_vs_distract_when_stressed"`
	UnderstandUpsetFriendImmediately *int `gorm:"column:understand_upset_friend_immediately" json:"understand_upset_friend_immediately"`
	RelyLogicOverGut               *int `gorm:"column:rely_logic_over_gut" json:"rely_logic_over_gut"`
	FollowThroughLongTermGoals     *int `gorm:"column:follow_through_long_term_goals" json:"follow_through_long_term_goals"`
	AnxiousTalkItOutVsInternal     *int `gorm:"column:anxious_talk_it_out_vs_internal" json:"anxious_talk_it_out_vs_internal"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (AlwaysNever) TableName() string { return "always_never" }

// ScaleFields returns the answers in questionnaire order.
func (a *AlwaysNever) ScaleFields() []*int {
	if a == nil {
		return nil
	}
	return []*int{
		a.MakingPlansPreferSchedule,
		a.ThrillSeekingFrequency,
		a.AnalyzeVsDistractWhenStressed,
		a.UnderstandUpsetFriendImmediately,
		a.RelyLogicOverGut,
		a.FollowThroughLongTermGoals,
		a.AnxiousTalkItOutVsInternal,
	}
}

// AgreeDisagree holds the second onboarding questionnaire, eight 1-5 scale
// answers.
type AgreeDisagree struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ProfileID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null;column:profile_id" json:"profile_id"`

	EnergizedByManyPeople      *int `gorm:"column:energized_by_many_people" json:"energized_by_many_people"`
	OwnEmotionsEasierThanOthers *int `gorm:"column:own_emotions_easier_than_others" json:"own_emotions_easier_than_others"`
	HighlyOrganizedPerson      *int `gorm:"column:highly_organized_person" json:"highly_organized_person"`
	NoticeSubtleMoodChanges    *int `gorm:"column:notice_subtle_mood_changes" json:"notice_subtle_mood_changes"`
	ComfortableChallengingNorms *int `gorm:"column:comfortable_challenging_norms" json:"comfortable_challenging_norms"`
	EasyToAdmitWrong           *int `gorm:"column:easy_to_admit_wrong" json:"easy_to_admit_wrong"`
	PreferExploringNewIdeas    *int `gorm:"column:prefer_exploring_new_ideas" json:"prefer_exploring_new_ideas"`
	FairnessHonestyImportant   *int `gorm:"column:fairness_honesty_important" json:"fairness_honesty_important"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (AgreeDisagree) TableName() string { return "agree_disagree" }

func (a *AgreeDisagree) ScaleFields() []*int {
	if a == nil {
		return nil
	}
	return []*int{
		a.EnergizedByManyPeople,
		a.OwnEmotionsEasierThanOthers,
		a.HighlyOrganizedPerson,
		a.NoticeSubtleMoodChanges,
		a.ComfortableChallengingNorms,
		a.EasyToAdmitWrong,
		a.PreferExploringNewIdeas,
		a.FairnessHonestyImportant,
	}
}
