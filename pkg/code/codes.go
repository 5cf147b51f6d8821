package code

// Registered response codes. Grouped by concern: generic, auth/session,
// validation, metadata store, object storage, items.

var (
	Success = NewSuss(200, lang{en: "Success", zh_cn: "成功"})
	Failed  = NewError(201, lang{en: "Failed", zh_cn: "失败"})

	ErrorServerInternal = NewError(500, lang{en: "Internal server error", zh_cn: "服务器内部错误"})
	ErrorNotFoundAPI    = NewError(404, lang{en: "API not found", zh_cn: "接口不存在"})
	ErrorTooManyRequest = NewError(429, lang{en: "Too many requests", zh_cn: "请求过多"})

	// Validation
	ErrorInvalidParams = NewError(10001, lang{en: "Invalid request parameters", zh_cn: "请求参数错误"})

	// Auth / session
	ErrorNotUserAuthToken         = NewError(20001, lang{en: "Missing auth token", zh_cn: "缺少用户认证令牌"})
	ErrorInvalidUserAuthToken     = NewError(20002, lang{en: "Invalid auth token", zh_cn: "无效的用户认证令牌"})
	ErrorUserLoginFailed          = NewError(20003, lang{en: "Incorrect credentials or password", zh_cn: "账号或密码错误"})
	ErrorUserAlreadyExists        = NewError(20004, lang{en: "User already exists", zh_cn: "用户已存在"})
	ErrorUserNotExists            = NewError(20005, lang{en: "User does not exist", zh_cn: "用户不存在"})
	ErrorUserRegisterDisabled     = NewError(20006, lang{en: "Registration is disabled", zh_cn: "注册已关闭"})
	ErrorUserOldPasswordIncorrect = NewError(20007, lang{en: "Old password is incorrect", zh_cn: "旧密码错误"})
	ErrorUserPasswordMismatch     = NewError(20008, lang{en: "Passwords do not match", zh_cn: "两次密码不一致"})

	// Metadata store
	ErrorDBQuery           = NewError(30001, lang{en: "Database query failed", zh_cn: "数据库查询失败"})
	ErrorFileNotFound      = NewError(30002, lang{en: "File not found", zh_cn: "文件不存在"})
	ErrorFolderNotFound    = NewError(30003, lang{en: "Folder not found", zh_cn: "文件夹不存在"})
	ErrorFileAlreadyExists = NewError(30004, lang{en: "File already exists", zh_cn: "文件已存在"})

	// Object storage
	ErrorInvalidStorageType = NewError(40001, lang{en: "Invalid storage type", zh_cn: "无效的存储类型"})
	ErrorStorageUpload      = NewError(40002, lang{en: "Failed to store file content", zh_cn: "文件内容存储失败"})
	ErrorStorageDownload    = NewError(40003, lang{en: "Failed to read file content", zh_cn: "文件内容读取失败"})
	ErrorStorageDelete      = NewError(40004, lang{en: "Failed to delete file content", zh_cn: "文件内容删除失败"})
	ErrorStorageNotEnabled  = NewError(40005, lang{en: "Storage backend is not enabled", zh_cn: "存储后端未启用"})
)
