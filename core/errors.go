package core

// DomainError 是领域层的统一错误类型。
//
// 设计原则：
//   - 所有领域层错误都使用此类型
//   - 提供错误代码（Code）和消息（Message）
//   - 支持错误检查函数（IsXXX）
//
// 使用场景：
//   - Store 错误：NOT_FOUND, NOT_SUPPORTED
//   - 模型错误：INSUFFICIENT_DATA, NOT_FOUND
//   - 持久化错误：PERSISTENCE
type DomainError struct {
	Code    string // 错误代码（如 "NOT_FOUND", "INSUFFICIENT_DATA"）
	Message string // 错误消息
	Module  string // 模块名称（如 "store", "model", "sentiment"）
}

func (e *DomainError) Error() string {
	return e.Message
}

// IsDomainError 检查错误是否为 DomainError 类型
func IsDomainError(err error) bool {
	if err == nil {
		return false
	}
	_, ok := err.(*DomainError)
	return ok
}

// GetDomainError 获取 DomainError，如果不是则返回 nil
func GetDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	if domainErr, ok := err.(*DomainError); ok {
		return domainErr
	}
	return nil
}

// NewDomainError 创建新的领域错误
func NewDomainError(module, code, message string) *DomainError {
	return &DomainError{
		Module:  module,
		Code:    code,
		Message: message,
	}
}

// 错误代码常量
const (
	ErrorCodeNotFound         = "NOT_FOUND"          // 资源不存在（未知用户/商品，冷启动属正常态）
	ErrorCodeNotSupported     = "NOT_SUPPORTED"      // 操作不支持
	ErrorCodeUnavailable      = "UNAVAILABLE"        // 可选能力不可用（降级运行）
	ErrorCodeInsufficientData = "INSUFFICIENT_DATA"  // 训练数据为空或退化
	ErrorCodePersistence      = "PERSISTENCE"        // 模型落盘/加载失败
	ErrorCodeInvalidInput     = "INVALID_INPUT"      // 输入无效
	ErrorCodeInternalError    = "INTERNAL_ERROR"     // 内部错误
)

// 模块名称常量
const (
	ModuleStore     = "store"     // 存储模块
	ModuleBehavior  = "behavior"  // 行为日志模块
	ModuleModel     = "model"     // 模型模块
	ModuleSentiment = "sentiment" // 情感分析模块
	ModuleService   = "service"   // 服务模块
)

// IsNotFound 检查错误是否为 NOT_FOUND
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeNotFound
	}
	return false
}

// IsInsufficientData 检查错误是否为 INSUFFICIENT_DATA
func IsInsufficientData(err error) bool {
	if err == nil {
		return false
	}
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeInsufficientData
	}
	return false
}

// IsUnavailable 检查错误是否为 UNAVAILABLE
func IsUnavailable(err error) bool {
	if err == nil {
		return false
	}
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeUnavailable
	}
	return false
}

// IsPersistence 检查错误是否为 PERSISTENCE
func IsPersistence(err error) bool {
	if err == nil {
		return false
	}
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodePersistence
	}
	return false
}

// 模型相关错误定义
var (
	// ErrInsufficientData 表示训练输入为空：训练视为 no-op，保留旧模型
	ErrInsufficientData = NewDomainError(ModuleModel, ErrorCodeInsufficientData, "model: insufficient training data")

	// ErrModelNotTrained 表示模型尚未训练（查询方应返回空结果而非报错）
	ErrModelNotTrained = NewDomainError(ModuleModel, ErrorCodeUnavailable, "model: not trained")
)
