package client

// Сообщения об ошибках, которые видит пользователь.
const (
	msgLoginFailed = "Đăng nhập thất bại"

	msgStoriesLoad      = "Không thể tải danh sách truyện"
	msgStoryNotFound    = "Không tìm thấy truyện"
	msgStoriesAdminLoad = "Không thể tải danh sách truyện (admin)"
	msgStoryCreate      = "Tạo truyện thất bại"
	msgStoryUpdate      = "Cập nhật truyện thất bại"
	msgStoryRemove      = "Xóa truyện thất bại"
	msgStoryView        = "Không thể ghi nhận lượt xem"
	msgStoryLike        = "Không thể thích truyện"

	msgCategoriesLoad      = "Không thể tải thể loại"
	msgCategoriesAdminLoad = "Không thể tải thể loại (admin)"
	msgCategoryCreate      = "Tạo thể loại thất bại"
	msgCategoryUpdate      = "Cập nhật thể loại thất bại"
	msgCategoryRemove      = "Xóa thể loại thất bại"

	msgDonationCreate = "Tạo donate thất bại"
	msgDonationsLoad  = "Không thể tải danh sách donate"
	msgDonationUpdate = "Cập nhật donate thất bại"

	msgSettingsFallback = "Không thể xử lý yêu cầu"

	msgSeoOrganization = "Không thể tải dữ liệu SEO organization"
	msgSeoArticle      = "Không thể tải SEO article"
	msgSeoBreadcrumb   = "Không thể tải breadcrumb"

	msgUploadFailed = "Upload ảnh thất bại"

	msgCheckoutFailed = "Không thể tạo phiên thanh toán"
)
