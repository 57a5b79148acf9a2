package commands

import (
	"tutorcenter/internal/domain/catalogs/student"
	"tutorcenter/internal/domain/documents/enrollment"
)

type seedSheet struct {
	Subject   string
	Code      string
	Title     string
	Pages     int
	Questions int
}

type seedClass struct {
	Name  string
	Price string
	Seats int
}

type seedProgress struct {
	Subject  string
	Sheet    string
	Page     int
	Question int
	Teacher  string
}

type seedStudent struct {
	FullName string
	Nickname string
	Grade    string
	School   string
	Phone    string
	Channel  student.ContactChannel
	Referral student.ReferralSource
	Type     enrollment.Type
}

var seedSubjects = []string{"คณิต", "อังกฤษ", "วิทย์"}

var seedSheets = []seedSheet{
	{"คณิต", "MATH-A01", "เศษส่วนพื้นฐาน", 48, 120},
	{"คณิต", "MATH-A02", "ทศนิยม & ร้อยละ", 52, 140},
	{"คณิต", "MATH-A03", "สมการง่าย ๆ", 40, 100},
	{"อังกฤษ", "ENG-G01", "Grammar Basics", 36, 90},
	{"อังกฤษ", "ENG-R01", "Reading Practice", 60, 0},
	{"อังกฤษ", "ENG-V01", "Vocabulary Set 1", 30, 0},
	{"วิทย์", "SCI-P01", "พืชและการสังเคราะห์แสง", 44, 80},
	{"วิทย์", "SCI-F01", "แรงและการเคลื่อนที่", 50, 100},
}

var seedClasses = []seedClass{
	{"ป.6 เสาร์บ่าย", "12000", 20},
	{"ม.2 อาทิตย์เช้า", "15000", 20},
	{"ม.3 พุธเย็น", "18000", 20},
}

// seedClassSubjects maps class name to the subjects it teaches.
var seedClassSubjects = map[string][]seedProgress{
	"ป.6 เสาร์บ่าย": {
		{"คณิต", "MATH-A01", 10, 25, "ครูบีม"},
		{"อังกฤษ", "ENG-G01", 6, 12, "ครูปังปอนด์"},
		{"วิทย์", "SCI-P01", 8, 15, "ครูอีม"},
	},
	"ม.2 อาทิตย์เช้า": {
		{"คณิต", "MATH-A02", 18, 40, "ครูบีม"},
		{"อังกฤษ", "ENG-R01", 12, 0, "ครูต้นข้าว"},
		{"วิทย์", "SCI-F01", 14, 30, "ครูอีม"},
	},
	"ม.3 พุธเย็น": {
		{"คณิต", "MATH-A03", 20, 55, "ครูบีม"},
		{"อังกฤษ", "ENG-V01", 9, 0, "ครูปังปอนด์"},
	},
}

var seedStudents = []seedStudent{
	{"ด.ช.ณัฐดนัย ศรีสุข", "หมิง", "ป.6", "โรงเรียนสาธิต", "0811111111", student.ChannelLine, student.ReferralWordOfMouth, enrollment.TypeNormal10},
	{"ด.ญ.ดารินทร์ พงศ์ดี", "ดอลล่า", "ป.6", "โรงเรียนสาธิต", "0822222222", student.ChannelFacebook, student.ReferralFacebook, enrollment.TypeNormal10},
	{"ด.ญ.อลิษา วัฒน์ชัย", "อลิษ", "ป.6", "โรงเรียนสาธิต", "0833333333", student.ChannelLine, student.ReferralWalkIn, enrollment.TypeNormal10},
	{"ด.ช.ภัทรดนัย ชูศรี", "เฟิร์ส", "ป.6", "โรงเรียนสาธิต", "0844444444", student.ChannelLine, student.ReferralWordOfMouth, enrollment.TypeFirstTrial11},
	{"ด.ช.โอภาส พิชัย", "โอโร่", "ป.6", "โรงเรียนสาธิต", "0855555555", student.ChannelFacebook, student.ReferralGoogle, enrollment.TypeFirstTrial11},
	{"ด.ช.กิตติพงศ์ จันทร์ดี", "กิต", "ม.2", "โรงเรียนมัธยม A", "0866666666", student.ChannelLine, student.ReferralFlyer, enrollment.TypeNormal20},
	{"ด.ญ.พิมพ์ชนก กาญจนา", "พิม", "ม.2", "โรงเรียนมัธยม A", "0877777777", student.ChannelFacebook, student.ReferralWordOfMouth, enrollment.TypeNormal20},
	{"ด.ช.ธีรภัทร สายใจ", "ธีร์", "ม.2", "โรงเรียนมัธยม A", "0888888888", student.ChannelLine, student.ReferralWalkIn, enrollment.TypeNormal20},
	{"ด.ญ.ชลธิชา แสงทอง", "ชล", "ม.2", "โรงเรียนมัธยม A", "0899999999", student.ChannelLine, student.ReferralFacebook, enrollment.TypeNormal20},
	{"ด.ช.จิรายุส วงศ์ดี", "จิม", "ม.3", "โรงเรียนมัธยม B", "0800000001", student.ChannelFacebook, student.ReferralWordOfMouth, enrollment.TypeFirstBonus12},
	{"ด.ญ.กวินทร์ณี พัฒน์", "กวิน", "ม.3", "โรงเรียนมัธยม B", "0800000002", student.ChannelLine, student.ReferralGoogle, enrollment.TypeFirstBonus12},
	{"ด.ช.ปุณณวิชญ์ เกษม", "ปุณ", "ม.3", "โรงเรียนมัธยม B", "0800000003", student.ChannelLine, student.ReferralWalkIn, enrollment.TypeFirstBonus12},
}

// classForGrade picks the seeded class a grade level studies in.
func classForGrade(grade string) string {
	switch grade {
	case "ป.6":
		return "ป.6 เสาร์บ่าย"
	case "ม.2":
		return "ม.2 อาทิตย์เช้า"
	default:
		return "ม.3 พุธเย็น"
	}
}
