package handler

// Тексты, которые видит пользователь.
const (
	msgGeneric          = "Có lỗi xảy ra"
	msgNotFound         = "Không tìm thấy trang"
	msgStoryNotFound    = "Không tìm thấy truyện"
	msgConnection       = "Không thể kết nối API"
	msgLoginFailed      = "Đăng nhập thất bại"
	msgNotAdmin         = "Tài khoản không có quyền quản trị"
	msgTooManyAttempts  = "Bạn đã thử quá nhiều lần, vui lòng thử lại sau"
	msgSessionExpired   = "Phiên đăng nhập đã hết hạn"
	msgTitleSlugMissing = "Vui lòng nhập tên truyện và slug"
	msgNameSlugMissing  = "Vui lòng nhập tên và slug"
	msgDonationInvalid  = "Vui lòng nhập tên và số tiền hợp lệ"
	msgInvalidStatus    = "Trạng thái không hợp lệ"
	msgSiteNameMissing  = "Vui lòng nhập tên website"
	msgCheckoutFailed   = "Không thể tạo phiên thanh toán"

	msgStoryCreated    = "Đã tạo truyện"
	msgStoryUpdated    = "Đã cập nhật truyện"
	msgStoryDeleted    = "Đã xóa truyện"
	msgCategorySaved   = "Đã lưu thể loại"
	msgCategoryDeleted = "Đã xóa thể loại"
	msgDonationUpdated = "Đã cập nhật trạng thái"
	msgSettingsSaved   = "Đã lưu cài đặt"
	msgUploaded        = "Đã tải ảnh lên: "
	msgLikeFailed      = "Không thể thích truyện"
	msgLastSection     = "Cần giữ lại ít nhất một đoạn tóm tắt"
)
