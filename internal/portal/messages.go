package portal

import (
	"errors"

	"github.com/staff-portal/internal/domain"
)

// ErrBusy is returned when a report is submitted while another is in flight.
var ErrBusy = errors.New("submission in progress")

type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
	NoticeInfo    NoticeKind = "info"
)

// Notice is a one-shot message shown to the user.
type Notice struct {
	Kind NoticeKind
	Text string
}

const (
	MsgBadLogin          = "بيانات الدخول غير صحيحة"
	MsgLoginFailed       = "حدث خطأ أثناء تسجيل الدخول"
	MsgRequiredFields    = "يرجى ملء جميع الحقول المطلوبة"
	MsgUnreachable       = "تعذر الاتصال بالخادم، حاول مرة أخرى"
	MsgLoadNotifications = "حدث خطأ في تحميل الإشعارات من قاعدة البيانات"
	MsgLoadReports       = "حدث خطأ في تحميل البلاغات من قاعدة البيانات"
	MsgNotificationsOK   = "تم تحديث الإشعارات بنجاح"
	MsgNoPermission      = "ليس لديك صلاحية لتنفيذ هذا الإجراء"
	MsgNotFound          = "لم يتم العثور على البيانات المطلوبة"
	MsgGeneric           = "حدث خطأ غير متوقع"
	MsgSessionExpired    = "انتهت الجلسة، يرجى تسجيل الدخول مرة أخرى"

	MsgReportSent   = "تم إرسال البلاغ بنجاح"
	MsgReportFailed = "فشل في إرسال البلاغ"
	MsgReportBusy   = "جاري إرسال البلاغ، يرجى الانتظار"

	MsgNotificationAdded   = "تم إضافة الإشعار بنجاح"
	MsgNotificationUpdated = "تم تحديث الإشعار بنجاح"
	MsgNotificationDeleted = "تم حذف الإشعار بنجاح"
	MsgStatusUpdated       = "تم تحديث حالة البلاغ بنجاح"

	// MsgTotalsMismatch takes the section name, the itemized sum and the stored total.
	MsgTotalsMismatch = "مجموع بنود %s (%s) لا يطابق الإجمالي المسجل (%s)"

	MsgPasswordMismatch = "كلمة المرور الجديدة وتأكيدها غير متطابقين"
	MsgPasswordShort    = "كلمة المرور يجب أن تكون 6 أحرف على الأقل"
	MsgPasswordWrong    = "كلمة المرور الحالية غير صحيحة"
	MsgPasswordChanged  = "تم تغيير كلمة المرور بنجاح"
	MsgPhoneRequired    = "يرجى إدخال رقم الهاتف الجديد"
	MsgPhoneInvalid     = "يرجى إدخال رقم هاتف صحيح (مثال: 01012345678)"
	MsgPhoneChanged     = "تم تغيير رقم الهاتف بنجاح"

	UnknownOwnerName = "مستخدم غير معروف"
	UnknownOwnerFile = "غير محدد"
)

// Message turns an error into the short Arabic text shown to the user.
// fallback is used for errors without a specific message.
func Message(err error, fallback string) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrBusy):
		return MsgReportBusy
	case errors.Is(err, domain.ErrUnreachable):
		return MsgUnreachable
	case errors.Is(err, domain.ErrAuthMismatch):
		return MsgPasswordWrong
	case errors.Is(err, domain.ErrUnauthorized):
		return MsgSessionExpired
	case errors.Is(err, domain.ErrForbidden):
		return MsgNoPermission
	case errors.Is(err, domain.ErrNotFound):
		return MsgNotFound
	case errors.Is(err, domain.ErrBadRequest):
		return MsgRequiredFields
	}
	if fallback != "" {
		return fallback
	}
	return MsgGeneric
}
